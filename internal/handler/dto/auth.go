// Package dto defines request and response shapes for the HTTP API.
// Every endpoint uses an explicit typed struct; there are no ad hoc shapes.
package dto

// CredentialsRequest is the login/register input. It is transient and never
// persisted as-is.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a plain outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}
