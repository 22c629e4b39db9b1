// Package queue defines the events exchanged over RabbitMQ and the
// publisher/consumer pair that moves them.
package queue

// PasswordResetQueue is the durable queue carrying reset notifications.
const PasswordResetQueue = "password.reset"

// PasswordResetEvent carries everything the notifier needs to deliver a reset
// link out of band. It is the only place the raw token leaves the server.
type PasswordResetEvent struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	ResetLink   string `json:"reset_link"`
	Token       string `json:"token"`
	ExpiresAt   string `json:"expires_at"`
	RequestedAt string `json:"requested_at"`
}
