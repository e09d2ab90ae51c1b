package model

import "time"

// ContactSubmission represents a message sent through the contact form,
// as recorded by the remote backend.
type ContactSubmission struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
