package models

import "time"

// Quote is a quotation owned by a single user. Author is optional.
type Quote struct {
	ID        int64
	Text      string
	Author    *string
	OwnerID   int64
	CreatedAt time.Time
}
