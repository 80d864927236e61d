package model

import (
	"net/url"
	"time"
)

// User is the persisted account record. The password hash never leaves the
// server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResetToken gates the password reset confirm step. A token is single-use
// and expires.
type ResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Used      bool
}

type RegisterForm struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

func (f *RegisterForm) FromValues(v url.Values) {
	f.Username = v.Get("username")
	f.Email = v.Get("email")
	f.Password1 = v.Get("password1")
	f.Password2 = v.Get("password2")
}

// Echo returns the re-renderable inputs. Passwords are never echoed.
func (f *RegisterForm) Echo() any {
	return map[string]string{"username": f.Username, "email": f.Email}
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (f *LoginForm) FromValues(v url.Values) {
	f.Username = v.Get("username")
	f.Password = v.Get("password")
}

func (f *LoginForm) Echo() any {
	return map[string]string{"username": f.Username}
}

type PasswordResetForm struct {
	Email string `json:"email" validate:"required,email"`
}

func (f *PasswordResetForm) FromValues(v url.Values) {
	f.Email = v.Get("email")
}

func (f *PasswordResetForm) Echo() any {
	return map[string]string{"email": f.Email}
}

type PasswordResetConfirmForm struct {
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

func (f *PasswordResetConfirmForm) FromValues(v url.Values) {
	f.Password1 = v.Get("password1")
	f.Password2 = v.Get("password2")
}
