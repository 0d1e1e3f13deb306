package models

import "time"

// Message is a feedback entry submitted by a client account.
type Message struct {
	ID        int64     `json:"message_id"`
	AccountID int64     `json:"account_id"`
	Text      string    `json:"message_text"`
	CreatedAt time.Time `json:"created_at"`

	// Author fields are filled on listing only.
	AuthorFirstName string `json:"account_firstname,omitempty"`
	AuthorLastName  string `json:"account_lastname,omitempty"`
	AuthorEmail     string `json:"account_email,omitempty"`
}
