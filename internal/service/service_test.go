package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vbonduro/planttracker/internal/db"
	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/imagestore"
	"github.com/vbonduro/planttracker/internal/qrcode"
	"github.com/vbonduro/planttracker/internal/store"
)

// stubImageStore is a minimal in-memory imagestore.Store for tests.
type stubImageStore struct {
	mu     sync.Mutex
	saved  map[string][]byte
	puts   int
	putErr error
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{saved: make(map[string][]byte)}
}

func (s *stubImageStore) Put(_ context.Context, key string, r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.saved[key] = data
	s.puts++
	return nil
}

func (s *stubImageStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.saved[key]
	if !ok {
		return nil, "", imagestore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (s *stubImageStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[key]
	return ok, nil
}

func (s *stubImageStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

var errDiskFull = errors.New("disk full")

// fixedToday is the date the test service believes it is.
var fixedToday = domain.MustParseDate("2024-08-15")

func newTestService(t *testing.T) (*TrackerService, *stubImageStore) {
	t.Helper()
	d, err := db.OpenForTesting(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	images := newStubImageStore()
	svc := NewTrackerService(store.New(d), qrcode.NewGenerator(images, "http://localhost:3000", logger), logger)
	svc.now = func() time.Time { return fixedToday.Time().Add(15 * time.Hour) }
	return svc, images
}

func strPtr(s string) *string { return &s }

func datePtr(s string) *domain.Date {
	d := domain.MustParseDate(s)
	return &d
}

func mustPlant(t *testing.T, svc *TrackerService, name string) *domain.Plant {
	t.Helper()
	p, err := svc.CreatePlant(context.Background(), NewPlant{
		Name: name, Family: "Araceae", Genus: "Monstera", Species: "deliciosa", Size: domain.SizeMedium,
	})
	require.NoError(t, err)
	return p
}

func mustPot(t *testing.T, svc *TrackerService, room string) *domain.Pot {
	t.Helper()
	p, err := svc.CreatePot(context.Background(), NewPot{Room: room, Size: "15cm"})
	require.NoError(t, err)
	return p.Pot
}

func mustSoil(t *testing.T, svc *TrackerService, name string) *domain.Soil {
	t.Helper()
	s, err := svc.CreateSoil(context.Background(), NewSoil{Name: name, Composition: "bark, perlite, coir"})
	require.NoError(t, err)
	return s
}

func mustMove(t *testing.T, svc *TrackerService, plant *domain.Plant, pot *domain.Pot, soil *domain.Soil, start string) *PlantDetail {
	t.Helper()
	d, err := svc.Move(context.Background(), MoveRequest{PlantID: plant.ID, PotID: pot.ID, SoilID: soil.ID, StartDate: datePtr(start)})
	require.NoError(t, err)
	return d
}

// openPlacements returns every open placement in the database.
func openPlacements(t *testing.T, svc *TrackerService) []*domain.Placement {
	t.Helper()
	open, err := svc.store.Placements.ListOpen(context.Background())
	require.NoError(t, err)
	return open
}
