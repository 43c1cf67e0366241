package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/filex"
)

// snapshot is the on-disk wrapper around the collection. SavedAt is
// informational only; freshness decisions belong to the synchronizer cache.
type snapshot struct {
	SavedAt time.Time            `json:"savedAt"`
	Plants  []models.PlantRecord `json:"plants"`
}

// FileStore keeps the collection as a single JSON document. Writes go
// through a temp file plus rename so a crash never leaves a half-written
// mirror behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]models.PlantRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.PlantRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read mirror: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode mirror: %w", err)
	}
	if snap.Plants == nil {
		return []models.PlantRecord{}, nil
	}
	return snap.Plants, nil
}

func (s *FileStore) Save(records []models.PlantRecord) error {
	if _, err := filex.EnsureParentDir(s.path); err != nil {
		return err
	}

	snap := snapshot{SavedAt: time.Now().UTC(), Plants: records}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode mirror: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace mirror: %w", err)
	}
	return nil
}

// DefaultPath returns the mirror location inside the user config dir,
// falling back to the working directory when the config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "plants.json"
	}
	return filepath.Join(dir, "geotag-plants", "plants.json")
}
