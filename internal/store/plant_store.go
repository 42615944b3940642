package store

import (
	"context"
	"fmt"

	"github.com/vbonduro/planttracker/internal/domain"
)

const plantColumns = `id, name, family, genus, species, species2, variation, size, status, removed_reason, date_added, notes`

type PlantStore struct {
	db DBTX
}

func NewPlantStore(db DBTX) *PlantStore {
	return &PlantStore{db: db}
}

func (s *PlantStore) Create(ctx context.Context, p *domain.Plant) (*domain.Plant, error) {
	id, err := insert(ctx, s.db, `
		INSERT INTO plants (name, family, genus, species, species2, variation, size, status, removed_reason, date_added, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`, p.Name, p.Family, p.Genus, p.Species, p.Species2, p.Variation, string(p.Size), string(p.Status), p.RemovedReason, p.DateAdded, p.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create plant: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns (nil, nil) when the plant does not exist.
func (s *PlantStore) GetByID(ctx context.Context, id int64) (*domain.Plant, error) {
	p, err := get[domain.Plant](ctx, s.db, `SELECT `+plantColumns+` FROM plants WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}
	return p, nil
}

func (s *PlantStore) List(ctx context.Context) ([]*domain.Plant, error) {
	plants, err := list[domain.Plant](ctx, s.db, `SELECT `+plantColumns+` FROM plants ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	return plants, nil
}

// Update overwrites every mutable column of p.
func (s *PlantStore) Update(ctx context.Context, p *domain.Plant) error {
	n, err := exec(ctx, s.db, `
		UPDATE plants SET name = ?, family = ?, genus = ?, species = ?, species2 = ?, variation = ?,
			size = ?, status = ?, removed_reason = ?, date_added = ?, notes = ?
		WHERE id = ?
	`, p.Name, p.Family, p.Genus, p.Species, p.Species2, p.Variation,
		string(p.Size), string(p.Status), p.RemovedReason, p.DateAdded, p.Notes, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}
	if n == 0 {
		return domain.NotFound("plant", p.ID)
	}
	return nil
}

// Lock holds the plant row until the surrounding transaction ends.
func (s *PlantStore) Lock(ctx context.Context, id int64) error {
	return lockRow(ctx, s.db, "plants", id)
}
