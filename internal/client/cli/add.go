package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/netx"
)

// Add runs the full upload flow for one photo: presign, PUT the bytes to
// the hosting service, ask the server to read the GPS tag, then create the
// record through the synchronizer.
func (a *App) Add(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Cannot read %s: %v", path, err)
		return err
	}

	name := filepath.Base(path)

	putURL, publicURL, err := a.client.PresignUpload(ctx, name)
	if err != nil {
		log.Printf("Presign failed: %v", err)
		return err
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if err := netx.UploadToPresignedURL(ctx, putURL, contentType, data); err != nil {
		log.Printf("Upload failed: %v", err)
		return err
	}

	lat, lon, err := a.client.ExtractCoordinates(ctx, name, publicURL)
	if err != nil {
		log.Printf("Coordinate extraction failed: %v", err)
		return err
	}

	record, err := a.sync.CreateRecord(ctx, models.PlantDraft{
		ImageName: name,
		ImageURL:  publicURL,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		log.Printf("Create failed: %v", err)
		return err
	}

	printlnFn(fmt.Sprintf("Added %s as %s at (%.5f, %.5f)", name, record.ID, lat, lon))
	return nil
}
