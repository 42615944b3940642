package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/store"
)

const defaultRemovedReason = "Not specified"

type NewPlant struct {
	Name      string           `json:"name"`
	Family    string           `json:"family"`
	Genus     string           `json:"genus"`
	Species   string           `json:"species"`
	Species2  *string          `json:"species2"`
	Variation *string          `json:"variation"`
	Size      domain.PlantSize `json:"size"`
	DateAdded *domain.Date     `json:"date_added"`
	Notes     *string          `json:"notes"`
}

// CreatePlant registers an active plant. DateAdded defaults to today.
func (s *TrackerService) CreatePlant(ctx context.Context, in NewPlant) (*domain.Plant, error) {
	p := &domain.Plant{
		Name:      in.Name,
		Family:    in.Family,
		Genus:     in.Genus,
		Species:   in.Species,
		Species2:  in.Species2,
		Variation: in.Variation,
		Size:      in.Size,
		Status:    domain.StatusActive,
		DateAdded: s.today(),
		Notes:     in.Notes,
	}
	if in.DateAdded != nil {
		p.DateAdded = *in.DateAdded
	}
	if err := domain.ValidatePlant(p); err != nil {
		return nil, err
	}

	var created *domain.Plant
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		var err error
		created, err = tx.Plants.Create(ctx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("plant created", "plant_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TrackerService) UpdatePlant(ctx context.Context, id int64, patch domain.PlantPatch) (*domain.Plant, error) {
	var updated *domain.Plant
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if err := tx.Plants.Lock(ctx, id); err != nil {
			return err
		}
		p, err := tx.Plants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("plant", id)
		}
		if err := patch.Apply(p); err != nil {
			return err
		}
		if err := tx.Plants.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemovePlant marks the plant removed and closes its open placement today.
// Removing an already removed plant only updates the reason.
func (s *TrackerService) RemovePlant(ctx context.Context, id int64, reason string) (*domain.Plant, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultRemovedReason
	}
	today := s.today()

	var removed *domain.Plant
	var closed int64
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if err := tx.Plants.Lock(ctx, id); err != nil {
			return err
		}
		p, err := tx.Plants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("plant", id)
		}

		if !p.Removed() {
			open, err := tx.Placements.OpenForPlant(ctx, id)
			if err != nil {
				return err
			}
			if open != nil {
				if closed, err = tx.Placements.CloseOpenForPlant(ctx, id, today); err != nil {
					return err
				}
			}
		}

		p.Status = domain.StatusRemoved
		p.RemovedReason = &reason
		if err := tx.Plants.Update(ctx, p); err != nil {
			return err
		}
		removed = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("plant removed", "plant_id", id, "reason", reason, "placements_closed", closed)
	return removed, nil
}

// ListPlants returns every plant with its current pot and soil.
func (s *TrackerService) ListPlants(ctx context.Context) ([]*PlantDetail, error) {
	plants, err := s.store.Plants.List(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.store.Placements.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	byPlant := make(map[int64]*domain.Placement, len(open))
	for _, pl := range open {
		byPlant[pl.PlantID] = pl
	}

	r := newResolver(s.store)
	details := make([]*PlantDetail, 0, len(plants))
	for _, p := range plants {
		d := &PlantDetail{Plant: p}
		if pl, ok := byPlant[p.ID]; ok {
			if d.CurrentPot, err = r.pots.get(ctx, pl.PotID); err != nil {
				return nil, fmt.Errorf("failed to resolve pot for plant %d: %w", p.ID, err)
			}
			if d.CurrentSoil, err = r.soils.get(ctx, pl.SoilID); err != nil {
				return nil, fmt.Errorf("failed to resolve soil for plant %d: %w", p.ID, err)
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// GetPlant returns the plant, its current pot and soil, and its history
// newest first.
func (s *TrackerService) GetPlant(ctx context.Context, id int64) (*PlantWithHistory, error) {
	p, err := s.store.Plants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("plant", id)
	}

	history, err := s.history(ctx, p)
	if err != nil {
		return nil, err
	}

	out := &PlantWithHistory{PlantDetail: PlantDetail{Plant: p}, History: history}
	for _, h := range history {
		if h.Open() {
			out.CurrentPot = h.Pot
			out.CurrentSoil = h.Soil
			break
		}
	}
	return out, nil
}

// GetHistory returns the plant's placements newest first, each with its
// plant, pot and soil.
func (s *TrackerService) GetHistory(ctx context.Context, plantID int64) ([]*PlacementDetail, error) {
	p, err := s.store.Plants.GetByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("plant", plantID)
	}
	return s.history(ctx, p)
}

func (s *TrackerService) history(ctx context.Context, p *domain.Plant) ([]*PlacementDetail, error) {
	placements, err := s.store.Placements.ListByPlant(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	r := newResolver(s.store)
	r.plants.cache[p.ID] = p

	out := make([]*PlacementDetail, 0, len(placements))
	for _, pl := range placements {
		d, err := r.placement(ctx, pl)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve placement %d: %w", pl.ID, err)
		}
		out = append(out, d)
	}
	return out, nil
}
