package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/logging"
)

// maxImageBytes caps how much of an uploaded image the EXIF reader will pull.
// GPS tags live in the header, so this is generous.
const maxImageBytes = 32 << 20

// GeoService extracts GPS coordinates from uploaded plant photos. Images
// without GPS EXIF tags are rejected rather than defaulted to (0, 0).
type GeoService struct {
	httpClient *http.Client
	log        logging.Logger
}

func NewGeoService(log logging.Logger) *GeoService {
	return &GeoService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// ExtractCoordinates downloads the image at imageURL and returns the decimal
// latitude and longitude recorded in its EXIF GPS tags.
func (s *GeoService) ExtractCoordinates(ctx context.Context, imageURL string) (float64, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("error building image request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn(ctx, "image download failed", "url", imageURL, "error", err)
		return 0, 0, fmt.Errorf("error downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("error downloading image: unexpected status %d", resp.StatusCode)
	}

	return coordinatesFromEXIF(io.LimitReader(resp.Body, maxImageBytes))
}

func coordinatesFromEXIF(r io.Reader) (float64, float64, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return 0, 0, common.ErrNoGPSData
	}

	lat, lon, err := x.LatLong()
	if err != nil {
		return 0, 0, common.ErrNoGPSData
	}

	if !validCoordinates(lat, lon) {
		return 0, 0, common.ErrInvalidCoordinates
	}

	return lat, lon, nil
}
