package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sireesha-siri/geotag-plants/internal/common"
	"github.com/sireesha-siri/geotag-plants/internal/logging"
	"github.com/sireesha-siri/geotag-plants/internal/server/models"
)

type fakeCache struct {
	plants []*models.Plant
	hit    bool

	setCalls        int
	invalidateCalls int
	invalidateErr   error
}

func (f *fakeCache) Get(ctx context.Context, userID string) ([]*models.Plant, bool) {
	return f.plants, f.hit
}
func (f *fakeCache) Set(ctx context.Context, userID string, plants []*models.Plant) {
	f.setCalls++
}
func (f *fakeCache) Invalidate(ctx context.Context, userID string) error {
	f.invalidateCalls++
	return f.invalidateErr
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newPlantService(t *testing.T, repo *fakePlantsRepo, c *fakeCache) *PlantService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewPlantService(db, &fakeRepoManager{p: repo}, c, testLogger())
}

func TestList_CacheHitSkipsRepo(t *testing.T) {
	cached := []*models.Plant{{ID: "p1"}}
	c := &fakeCache{plants: cached, hit: true}
	s := newPlantService(t, &fakePlantsRepo{getErr: errors.New("must not be called")}, c)

	got, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, cached, got)
	require.Zero(t, c.setCalls)
}

func TestList_CacheMissPopulatesCache(t *testing.T) {
	fromDB := []*models.Plant{{ID: "p2"}, {ID: "p1"}}
	c := &fakeCache{}
	s := newPlantService(t, &fakePlantsRepo{plants: fromDB}, c)

	got, err := s.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, fromDB, got)
	require.Equal(t, 1, c.setCalls)
}

func TestList_RepoError(t *testing.T) {
	s := newPlantService(t, &fakePlantsRepo{getErr: errors.New("db down")}, &fakeCache{})

	_, err := s.List(context.Background(), "u1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "error listing plants")
}

func TestCreate_AssignsIDAndTimestamp(t *testing.T) {
	repo := &fakePlantsRepo{}
	c := &fakeCache{}
	s := newPlantService(t, repo, c)

	before := time.Now().UTC()
	created, err := s.Create(context.Background(), "u1", &models.Plant{
		ImageName: "rose.jpg",
		ImageURL:  "https://img/rose.jpg",
		Latitude:  16.5,
		Longitude: 80.6,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "u1", created.UserID)
	require.False(t, created.UploadedAt.Before(before))
	require.Len(t, repo.inserted, 1)
	require.Equal(t, 1, c.invalidateCalls)
}

func TestCreate_RejectsEmptyImageName(t *testing.T) {
	s := newPlantService(t, &fakePlantsRepo{}, &fakeCache{})

	_, err := s.Create(context.Background(), "u1", &models.Plant{ImageName: "   "})
	require.ErrorIs(t, err, common.ErrEmptyImageName)
}

func TestCreate_RejectsOutOfRangeCoordinates(t *testing.T) {
	s := newPlantService(t, &fakePlantsRepo{}, &fakeCache{})

	_, err := s.Create(context.Background(), "u1", &models.Plant{
		ImageName: "rose.jpg",
		Latitude:  91,
		Longitude: 0,
	})
	require.ErrorIs(t, err, common.ErrInvalidCoordinates)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo := &fakePlantsRepo{}
	c := &fakeCache{}
	s := newPlantService(t, repo, c)

	require.NoError(t, s.Delete(context.Background(), "u1", "p1"))
	require.Equal(t, []string{"p1"}, repo.deleted)
	require.Equal(t, 1, c.invalidateCalls)
}

func TestDelete_MissingRecord(t *testing.T) {
	c := &fakeCache{}
	s := newPlantService(t, &fakePlantsRepo{deleteErr: common.ErrNotFound}, c)

	err := s.Delete(context.Background(), "u1", "ghost")
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Zero(t, c.invalidateCalls)
}

func TestDelete_InvalidateErrorIsSoft(t *testing.T) {
	repo := &fakePlantsRepo{}
	c := &fakeCache{invalidateErr: errors.New("redis down")}
	s := newPlantService(t, repo, c)

	require.NoError(t, s.Delete(context.Background(), "u1", "p1"))
	require.Equal(t, []string{"p1"}, repo.deleted)
}
