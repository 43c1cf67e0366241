// Package models holds the server-side persistence structures.
package models

import "time"

// Plant is one stored observation, owned by a user.
type Plant struct {
	ID         string
	UserID     string
	ImageName  string
	ImageURL   string
	Latitude   float64
	Longitude  float64
	UploadedAt time.Time
}
