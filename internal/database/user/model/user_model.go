package model

import "time"

type User struct {
	ID           int64     `json:"id"`
	Owner        bool      `json:"owner"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	LanguageCode string    `json:"languageCode"`
	Username     string    `json:"username"`
	CreatedAt    time.Time `json:"createdAt"`
}
