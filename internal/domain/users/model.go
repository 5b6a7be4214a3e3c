package users

import "time"

// User es una credencial local. PasswordHash es bcrypt y nunca sale
// en una respuesta HTTP.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	PasswordHash string `json:"passwordHash"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
