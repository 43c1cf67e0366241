package cli

import (
	"context"
	"log"
)

func (a *App) Delete(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter record id to delete")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.sync.DeleteRecord(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Deleted", id)
	return nil
}
