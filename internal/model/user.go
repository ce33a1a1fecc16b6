package model

import (
	"time"
)

// bcrypt's encoded output is 60 bytes; anything shorter cannot be a real hash.
const minPasswordHashLen = 60

// User represents a registered account. Entries reference their owner through
// Entry.UserID.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"` // Never expose in JSON
	Created      time.Time `json:"created" gorm:"column:created;not null"`
}

// NewUser validates the candidate fields and returns an immutable User, or a
// ValidationError naming the first offending field. The email is preserved
// exactly as entered; uniqueness is enforced by the storage layer.
func NewUser(email, passwordHash string, created time.Time) (*User, error) {
	err := runRules([]rule{
		{"email", "required", func() bool { return email != "" }},
		{"email", "max_length_255", func() bool { return len(email) <= 255 }},
		{"email", "format", func() bool { return emailPattern.MatchString(email) }},
		{"password_hash", "min_length", func() bool { return len(passwordHash) >= minPasswordHashLen }},
		{"created", "required", func() bool { return !created.IsZero() }},
	})
	if err != nil {
		return nil, err
	}

	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Created:      created,
	}, nil
}
