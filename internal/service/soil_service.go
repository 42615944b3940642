package service

import (
	"context"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/store"
)

type NewSoil struct {
	Name        string `json:"name"`
	Composition string `json:"composition"`
	Active      *bool  `json:"active"`
}

func (s *TrackerService) CreateSoil(ctx context.Context, in NewSoil) (*domain.Soil, error) {
	soil := &domain.Soil{Name: in.Name, Composition: in.Composition, Active: true}
	if in.Active != nil {
		soil.Active = *in.Active
	}
	if err := domain.ValidateSoil(soil); err != nil {
		return nil, err
	}

	var created *domain.Soil
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		var err error
		created, err = tx.Soils.Create(ctx, soil)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("soil created", "soil_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TrackerService) UpdateSoil(ctx context.Context, id int64, patch domain.SoilPatch) (*domain.Soil, error) {
	var updated *domain.Soil
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		soil, err := tx.Soils.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if soil == nil {
			return domain.NotFound("soil", id)
		}
		if err := patch.Apply(soil); err != nil {
			return err
		}
		if err := tx.Soils.Update(ctx, soil); err != nil {
			return err
		}
		updated = soil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *TrackerService) ListSoils(ctx context.Context) ([]*domain.Soil, error) {
	return s.store.Soils.List(ctx)
}
