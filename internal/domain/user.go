package domain

import "time"

// User представляет зарегистрированного пользователя
type User struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef это краткий профиль пользователя, который приходит вместе с join-записями
type UserRef struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Ref возвращает краткий профиль пользователя
func (u *User) Ref() UserRef {
	return UserRef{UserID: u.UserID, Name: u.Name, Email: u.Email}
}
