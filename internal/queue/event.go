// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactMessageEvent is published when a visitor submits the contact form.
// It carries everything a downstream consumer needs to notify the owner
// without querying the primary database.
type ContactMessageEvent struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	ClientIP   string `json:"client_ip"`
	ReceivedAt string `json:"received_at"`
}
