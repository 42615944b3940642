package store

import (
	"context"
	"fmt"

	"github.com/vbonduro/planttracker/internal/domain"
)

const placementColumns = `id, plant_id, pot_id, soil_id, start_date, end_date, notes`

type PlacementStore struct {
	db DBTX
}

func NewPlacementStore(db DBTX) *PlacementStore {
	return &PlacementStore{db: db}
}

// Create inserts a placement. If it would become a second open placement for
// its plant or pot the partial unique indexes reject it with
// domain.ErrConflict.
func (s *PlacementStore) Create(ctx context.Context, p *domain.Placement) (*domain.Placement, error) {
	id, err := insert(ctx, s.db, `
		INSERT INTO placements (plant_id, pot_id, soil_id, start_date, end_date, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, p.PlantID, p.PotID, p.SoilID, p.StartDate, p.EndDate, p.Notes)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("plant %d or pot %d already has an open placement: %w", p.PlantID, p.PotID, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create placement: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PlacementStore) GetByID(ctx context.Context, id int64) (*domain.Placement, error) {
	p, err := get[domain.Placement](ctx, s.db, `SELECT `+placementColumns+` FROM placements WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get placement: %w", err)
	}
	return p, nil
}

// OpenForPlant returns the plant's current placement or nil.
func (s *PlacementStore) OpenForPlant(ctx context.Context, plantID int64) (*domain.Placement, error) {
	p, err := get[domain.Placement](ctx, s.db, `
		SELECT `+placementColumns+` FROM placements WHERE plant_id = ? AND end_date IS NULL
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open placement for plant: %w", err)
	}
	return p, nil
}

// OpenForPot returns the pot's current placement or nil.
func (s *PlacementStore) OpenForPot(ctx context.Context, potID int64) (*domain.Placement, error) {
	p, err := get[domain.Placement](ctx, s.db, `
		SELECT `+placementColumns+` FROM placements WHERE pot_id = ? AND end_date IS NULL
	`, potID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open placement for pot: %w", err)
	}
	return p, nil
}

func (s *PlacementStore) ListOpen(ctx context.Context) ([]*domain.Placement, error) {
	ps, err := list[domain.Placement](ctx, s.db, `
		SELECT `+placementColumns+` FROM placements WHERE end_date IS NULL ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list open placements: %w", err)
	}
	return ps, nil
}

// ListByPlant returns the plant's history, newest start date first.
func (s *PlacementStore) ListByPlant(ctx context.Context, plantID int64) ([]*domain.Placement, error) {
	ps, err := list[domain.Placement](ctx, s.db, `
		SELECT `+placementColumns+` FROM placements WHERE plant_id = ?
		ORDER BY start_date DESC, id DESC
	`, plantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	return ps, nil
}

// CloseOpenForPlant ends the plant's open placement on end and reports how
// many rows were closed (0 or 1).
func (s *PlacementStore) CloseOpenForPlant(ctx context.Context, plantID int64, end domain.Date) (int64, error) {
	n, err := exec(ctx, s.db, `
		UPDATE placements SET end_date = ? WHERE plant_id = ? AND end_date IS NULL
	`, end, plantID)
	if err != nil {
		return 0, fmt.Errorf("failed to close placement for plant: %w", err)
	}
	return n, nil
}

func (s *PlacementStore) CloseOpenForPot(ctx context.Context, potID int64, end domain.Date) (int64, error) {
	n, err := exec(ctx, s.db, `
		UPDATE placements SET end_date = ? WHERE pot_id = ? AND end_date IS NULL
	`, end, potID)
	if err != nil {
		return 0, fmt.Errorf("failed to close placement for pot: %w", err)
	}
	return n, nil
}
