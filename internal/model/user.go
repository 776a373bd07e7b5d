// Package model defines domain entities for the application.
package model

// User represents a registered account. The hash and salt are opaque to
// everything except the auth package and are never serialized to clients.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash []byte `json:"-"`
	PasswordSalt []byte `json:"-"`
}
