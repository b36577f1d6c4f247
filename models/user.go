package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the identity held by a session. Its JSON form is the persisted session record.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Credential pairs a user with the hash of their password.
type Credential struct {
	Email        string `bson:"_id" json:"email"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	User         User   `bson:"user" json:"user"`
}

func (c *Credential) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashed)
	return nil
}

func (c *Credential) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(candidate))
	return err == nil
}
