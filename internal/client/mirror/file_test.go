package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "plants.json"))
}

func TestFileStore_LoadMissingYieldsEmpty(t *testing.T) {
	s := tempStore(t)

	records, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	s := tempStore(t)

	in := []models.PlantRecord{
		{ID: "p2", ImageName: "b.jpg", ImageURL: "https://img/b.jpg", Latitude: 16.5, Longitude: 80.6, UploadedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)},
		{ID: "p1", ImageName: "a.jpg", ImageURL: "https://img/a.jpg", Latitude: -5, Longitude: 120, UploadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "plants.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save([]models.PlantRecord{{ID: "x"}}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileStore_MalformedContentReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
}

func TestFileStore_EmptyPlantsListStaysEmptyNotNil(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save([]models.PlantRecord{}))

	out, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestFileStore_SaveOverwritesPrevious(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, s.Save([]models.PlantRecord{{ID: "old"}}))
	require.NoError(t, s.Save([]models.PlantRecord{{ID: "new"}}))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "new", out[0].ID)
}
