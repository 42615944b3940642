package store

import (
	"context"
	"fmt"

	"github.com/vbonduro/planttracker/internal/domain"
)

type SoilStore struct {
	db DBTX
}

func NewSoilStore(db DBTX) *SoilStore {
	return &SoilStore{db: db}
}

func (s *SoilStore) Create(ctx context.Context, soil *domain.Soil) (*domain.Soil, error) {
	id, err := insert(ctx, s.db, `
		INSERT INTO soils (name, composition, active) VALUES (?, ?, ?)
		RETURNING id
	`, soil.Name, soil.Composition, soil.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to create soil: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *SoilStore) GetByID(ctx context.Context, id int64) (*domain.Soil, error) {
	soil, err := get[domain.Soil](ctx, s.db, `SELECT id, name, composition, active FROM soils WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get soil: %w", err)
	}
	return soil, nil
}

func (s *SoilStore) List(ctx context.Context) ([]*domain.Soil, error) {
	soils, err := list[domain.Soil](ctx, s.db, `SELECT id, name, composition, active FROM soils ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list soils: %w", err)
	}
	return soils, nil
}

func (s *SoilStore) Update(ctx context.Context, soil *domain.Soil) error {
	n, err := exec(ctx, s.db, `
		UPDATE soils SET name = ?, composition = ?, active = ? WHERE id = ?
	`, soil.Name, soil.Composition, soil.Active, soil.ID)
	if err != nil {
		return fmt.Errorf("failed to update soil: %w", err)
	}
	if n == 0 {
		return domain.NotFound("soil", soil.ID)
	}
	return nil
}
