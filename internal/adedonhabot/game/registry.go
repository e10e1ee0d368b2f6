package game

import "sync"

// Registry keeps the single active room per chat. Sessions remove
// themselves on completion through the wrapped done callback, so a chat
// can host a new game as soon as the previous one finished or was
// cancelled.
type Registry struct {
	mtx   sync.RWMutex
	rooms map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{rooms: map[int64]*Session{}}
}

// CreateLobby builds a session for the chat and registers it. A chat with
// a live room gets ErrRoomExists; the caller decides how to word that.
func (r *Registry) CreateLobby(config Config) (*Session, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.rooms[config.RoomID]; ok {
		return nil, ErrRoomExists
	}

	userDone := config.DoneFn
	config.DoneFn = func(session *Session) error {
		r.Remove(session.RoomID)
		if userDone != nil {
			return userDone(session)
		}
		return nil
	}

	session := NewSession(config)
	r.rooms[config.RoomID] = session

	return session, nil
}

func (r *Registry) Get(roomID int64) (*Session, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	session, ok := r.rooms[roomID]
	return session, ok
}

func (r *Registry) Remove(roomID int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.rooms, roomID)
}

// Len reports the number of live rooms, for the health endpoint.
func (r *Registry) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.rooms)
}
