package models

import "time"

// Session is the immutable snapshot of the authenticated star for one request.
type Session struct {
	StarID   string    `json:"star_id"`
	StarName string    `json:"star_name"`
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}
