package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
)

// Meta is the envelope every stored record carries.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Envelope exposes the envelope to generic storage code.
func (m *Meta) Envelope() *Meta { return m }

// Stamp assigns a fresh identity. Both timestamps get the same instant.
func (m *Meta) Stamp(id string, now time.Time) {
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
}

// Touch refreshes UpdatedAt. It never moves backwards, so a clock step
// cannot break CreatedAt <= UpdatedAt.
func (m *Meta) Touch(now time.Time) {
	if now.Before(m.UpdatedAt) {
		now = m.UpdatedAt
	}
	m.UpdatedAt = now
}
