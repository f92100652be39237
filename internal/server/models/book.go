package models

import "time"

// Book is a book record owned by a single user.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Description *string
	OwnerID     int64
	CreatedAt   time.Time
}
