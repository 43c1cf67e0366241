package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/client/syncerr"
)

func (a *App) List(ctx context.Context) error {
	printRecords(a.sync.Records())
	return nil
}

// Refresh re-fetches the collection. A network outage keeps the last-known
// records visible and only prints a notice.
func (a *App) Refresh(ctx context.Context, force bool) error {
	records, err := a.sync.Refresh(ctx, force)
	if err != nil {
		if syncerr.IsUnreachable(err) {
			printlnFn("Server unreachable, showing last-known data")
		} else {
			log.Printf("Refresh failed: %v", err)
		}
		printRecords(records)
		return err
	}
	printRecords(records)
	return nil
}

func printRecords(records []models.PlantRecord) {
	if len(records) == 0 {
		printlnFn("No plants recorded yet")
		return
	}
	for _, r := range records {
		printlnFn(fmt.Sprintf("%s  %-20s  (%.5f, %.5f)  %s",
			r.ID, r.ImageName, r.Latitude, r.Longitude, r.UploadedAt.Format("2006-01-02 15:04")))
	}
}
