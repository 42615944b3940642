package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/qrcode"
	"github.com/vbonduro/planttracker/internal/store"
)

// qrGenerator is the subset of qrcode.Generator that TrackerService requires.
type qrGenerator interface {
	Ensure(ctx context.Context, token, baseURL string) (path string, created bool, err error)
}

// TrackerService owns the plant, pot and soil registries and the move engine.
// Every mutation runs inside one store transaction.
type TrackerService struct {
	store  *store.Store
	qr     qrGenerator
	logger *slog.Logger

	now      func() time.Time
	newToken func() string
}

func NewTrackerService(st *store.Store, qr qrGenerator, logger *slog.Logger) *TrackerService {
	return &TrackerService{
		store:    st,
		qr:       qr,
		logger:   logger,
		now:      time.Now,
		newToken: qrcode.NewToken,
	}
}

func (s *TrackerService) today() domain.Date {
	return domain.DateOf(s.now())
}

// PlantDetail is a plant with its current pot and soil, both nil when the
// plant has no open placement.
type PlantDetail struct {
	*domain.Plant
	CurrentPot  *domain.Pot  `json:"current_pot"`
	CurrentSoil *domain.Soil `json:"current_soil"`
}

// PlantWithHistory adds the full placement history, newest first.
type PlantWithHistory struct {
	PlantDetail
	History []*PlacementDetail `json:"history"`
}

// PotDetail is a pot with the plant currently in it.
type PotDetail struct {
	*domain.Pot
	CurrentPlant *domain.Plant `json:"current_plant"`
	CurrentSoil  *domain.Soil  `json:"current_soil"`
	StartDate    *domain.Date  `json:"start_date"`
	QRCodePath   string        `json:"qr_code_path,omitempty"`
}

type PlacementDetail struct {
	*domain.Placement
	Plant *domain.Plant `json:"plant"`
	Pot   *domain.Pot   `json:"pot"`
	Soil  *domain.Soil  `json:"soil"`
}

// memo caches lookups by id for the duration of one read operation.
type memo[T any] struct {
	fetch func(ctx context.Context, id int64) (*T, error)
	cache map[int64]*T
}

func newMemo[T any](fetch func(ctx context.Context, id int64) (*T, error)) *memo[T] {
	return &memo[T]{fetch: fetch, cache: make(map[int64]*T)}
}

func (m *memo[T]) get(ctx context.Context, id int64) (*T, error) {
	if v, ok := m.cache[id]; ok {
		return v, nil
	}
	v, err := m.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	m.cache[id] = v
	return v, nil
}

// resolver expands placement ids into entities.
type resolver struct {
	plants *memo[domain.Plant]
	pots   *memo[domain.Pot]
	soils  *memo[domain.Soil]
}

func newResolver(st *store.Store) *resolver {
	return &resolver{
		plants: newMemo(st.Plants.GetByID),
		pots:   newMemo(st.Pots.GetByID),
		soils:  newMemo(st.Soils.GetByID),
	}
}

func (r *resolver) placement(ctx context.Context, p *domain.Placement) (*PlacementDetail, error) {
	plant, err := r.plants.get(ctx, p.PlantID)
	if err != nil {
		return nil, err
	}
	pot, err := r.pots.get(ctx, p.PotID)
	if err != nil {
		return nil, err
	}
	soil, err := r.soils.get(ctx, p.SoilID)
	if err != nil {
		return nil, err
	}
	return &PlacementDetail{Placement: p, Plant: plant, Pot: pot, Soil: soil}, nil
}
