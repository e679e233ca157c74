package entity

import "time"

// Address belongs to exactly one User (many addresses per user).
// No uniqueness constraints beyond the identifier.
type Address struct {
	ID         string
	UserID     string
	Country    string
	City       string
	Street     string
	PostalCode string
	CreatedAt  time.Time
}
