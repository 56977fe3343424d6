package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Star struct {
	bun.BaseModel `bun:"table:star"`
	ID            string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	StarName      string    `bun:"star_name,notnull,unique" json:"star_name"`
	DisplayName   string    `bun:"display_name" json:"display_name"`
	Email         string    `bun:"email" json:"email"`
	Avatar        *string   `bun:"avatar" json:"avatar"`
	Bio           *string   `bun:"bio" json:"bio"`
	Stardust      int64     `bun:"stardust,notnull,default:0" json:"stardust"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time `bun:"updated_at,default:current_timestamp" json:"updated_at"`
}

// StarLite is the profile forwarded to third-party fulfillment endpoints.
type StarLite struct {
	StarName    *string `json:"starName"`
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	Avatar      *string `json:"avatar"`
	Bio         *string `json:"bio"`
}

func (s *Star) Lite() StarLite {
	lite := StarLite{
		Avatar: s.Avatar,
		Bio:    s.Bio,
	}
	if s.StarName != "" {
		lite.StarName = &s.StarName
	}
	if s.DisplayName != "" {
		lite.DisplayName = &s.DisplayName
	}
	if s.Email != "" {
		lite.Email = &s.Email
	}
	return lite
}

// Name prefers the star name, then the display name.
func (s StarLite) Name() *string {
	if s.StarName != nil {
		return s.StarName
	}
	return s.DisplayName
}

// Greeting prefers the display name, then the star name.
func (s StarLite) Greeting() string {
	if s.DisplayName != nil {
		return *s.DisplayName
	}
	if s.StarName != nil {
		return *s.StarName
	}
	return ""
}

func (s StarLite) EmailAddress() string {
	if s.Email == nil {
		return ""
	}
	return *s.Email
}
