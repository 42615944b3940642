package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/store"
)

type MoveRequest struct {
	PlantID   int64        `json:"plant_id"`
	PotID     int64        `json:"pot_id"`
	SoilID    int64        `json:"soil_id"`
	StartDate *domain.Date `json:"start_date"`
	Notes     *string      `json:"notes"`
}

// Move places a plant into a pot with a soil mix from StartDate (default
// today). Any open placement of the plant and any open placement of the pot
// are closed at StartDate in the same transaction, so afterwards each has
// exactly one open placement: the new one. Moving into the pot the plant
// already occupies still starts a new placement. StartDate may not be in the
// future.
func (s *TrackerService) Move(ctx context.Context, req MoveRequest) (*PlantDetail, error) {
	if err := validateMove(req); err != nil {
		return nil, err
	}
	today := s.today()
	start := today
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if start.After(today) {
		return nil, domain.Invalid("start_date %s is in the future", start)
	}

	var detail *PlantDetail
	var placementID int64
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		// Plant before pot in every transaction that takes both locks.
		if err := tx.Plants.Lock(ctx, req.PlantID); err != nil {
			return err
		}
		if err := tx.Pots.Lock(ctx, req.PotID); err != nil {
			return err
		}

		plant, err := tx.Plants.GetByID(ctx, req.PlantID)
		if err != nil {
			return err
		}
		if plant == nil {
			return domain.NotFound("plant", req.PlantID)
		}
		pot, err := tx.Pots.GetByID(ctx, req.PotID)
		if err != nil {
			return err
		}
		if pot == nil {
			return domain.NotFound("pot", req.PotID)
		}
		soil, err := tx.Soils.GetByID(ctx, req.SoilID)
		if err != nil {
			return err
		}
		if soil == nil {
			return domain.NotFound("soil", req.SoilID)
		}
		if plant.Removed() {
			return fmt.Errorf("plant %d has been removed: %w", plant.ID, domain.ErrConflict)
		}

		plantOpen, err := tx.Placements.OpenForPlant(ctx, plant.ID)
		if err != nil {
			return err
		}
		potOpen, err := tx.Placements.OpenForPot(ctx, pot.ID)
		if err != nil {
			return err
		}
		for _, open := range []*domain.Placement{plantOpen, potOpen} {
			if open != nil && start.Before(open.StartDate) {
				return domain.Invalid("start_date %s is before the start_date %s of placement %d it would close",
					start, open.StartDate, open.ID)
			}
		}

		if _, err := tx.Placements.CloseOpenForPlant(ctx, plant.ID, start); err != nil {
			return err
		}
		if _, err := tx.Placements.CloseOpenForPot(ctx, pot.ID, start); err != nil {
			return err
		}
		created, err := tx.Placements.Create(ctx, &domain.Placement{
			PlantID:   plant.ID,
			PotID:     pot.ID,
			SoilID:    soil.ID,
			StartDate: start,
			Notes:     req.Notes,
		})
		if err != nil {
			return err
		}

		placementID = created.ID
		detail = &PlantDetail{Plant: plant, CurrentPot: pot, CurrentSoil: soil}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("plant moved",
		"plant_id", req.PlantID, "pot_id", req.PotID, "soil_id", req.SoilID,
		"start_date", start.String(), "placement_id", placementID)
	return detail, nil
}

func validateMove(req MoveRequest) error {
	var missing []string
	if req.PlantID <= 0 {
		missing = append(missing, "plant_id")
	}
	if req.PotID <= 0 {
		missing = append(missing, "pot_id")
	}
	if req.SoilID <= 0 {
		missing = append(missing, "soil_id")
	}
	if len(missing) > 0 {
		return domain.Invalid("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
