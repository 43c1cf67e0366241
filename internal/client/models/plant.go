// Package models defines the plant observation types exchanged between the
// client, the persisted mirror, and the plant-data service.
package models

import (
	"time"

	"github.com/sireesha-siri/geotag-plants/internal/common"
)

// PlantRecord is a single geo-tagged plant observation. The id and
// uploadedAt are assigned by the server when the record is saved.
type PlantRecord struct {
	ID         string    `json:"id"`
	ImageName  string    `json:"imageName"`
	ImageURL   string    `json:"imageUrl"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// PlantDraft is a record before the server has assigned an id.
type PlantDraft struct {
	ImageName string  `json:"imageName"`
	ImageURL  string  `json:"imageUrl"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks the coordinate ranges and the image name.
func (d PlantDraft) Validate() error {
	if d.ImageName == "" {
		return common.ErrEmptyImageName
	}
	if !ValidCoordinates(d.Latitude, d.Longitude) {
		return common.ErrInvalidCoordinates
	}
	return nil
}

// ValidCoordinates reports whether lat/lon fall inside the WGS84 ranges.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
