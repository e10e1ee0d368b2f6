package byteutil

import "encoding/binary"

// EncodeInt64ToBytes renders an id as a big-endian byte key for bbolt.
func EncodeInt64ToBytes(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func DecodeBytesToInt64(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
