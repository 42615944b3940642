package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vbonduro/planttracker/internal/domain"
	"github.com/vbonduro/planttracker/internal/qrcode"
	"github.com/vbonduro/planttracker/internal/store"
)

const maxTokenAttempts = 5

type NewPot struct {
	Room   string  `json:"room"`
	Size   string  `json:"size"`
	Notes  *string `json:"notes"`
	Active *bool   `json:"active"`
	// BaseURL overrides the configured public base URL encoded into the
	// label.
	BaseURL string `json:"domain"`
}

// CreatePot registers a pot under a fresh QR token and then ensures its label
// image. A failed image is logged and left for EnsureQRImages to repair, in
// which case QRCodePath is empty.
func (s *TrackerService) CreatePot(ctx context.Context, in NewPot) (*PotDetail, error) {
	pot := &domain.Pot{Room: in.Room, Size: in.Size, Notes: in.Notes, Active: true}
	if in.Active != nil {
		pot.Active = *in.Active
	}
	if err := domain.ValidatePot(pot); err != nil {
		return nil, err
	}

	created, err := s.insertWithToken(ctx, pot)
	if err != nil {
		return nil, err
	}
	s.logger.Info("pot created", "pot_id", created.ID, "qr_code_id", created.QRCodeID, "room", created.Room)

	path, _, err := s.qr.Ensure(ctx, created.QRCodeID, in.BaseURL)
	if err != nil {
		s.logger.Error("failed to generate qr image", "pot_id", created.ID, "qr_code_id", created.QRCodeID, "error", err)
		path = ""
	}
	return &PotDetail{Pot: created, QRCodePath: path}, nil
}

func (s *TrackerService) insertWithToken(ctx context.Context, pot *domain.Pot) (*domain.Pot, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token := s.newToken()
		exists, err := s.store.Pots.QRExists(ctx, token)
		if err != nil {
			return nil, err
		}
		if exists {
			s.logger.Warn("qr token collision", "attempt", attempt)
			continue
		}

		pot.QRCodeID = token
		var created *domain.Pot
		err = s.store.InTx(ctx, func(tx *store.Store) error {
			var err error
			created, err = tx.Pots.Create(ctx, pot)
			return err
		})
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn("qr token collision on insert", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		return created, nil
	}
	return nil, fmt.Errorf("no unused token after %d attempts: %w", maxTokenAttempts, domain.ErrTokenExhausted)
}

func (s *TrackerService) UpdatePot(ctx context.Context, id int64, patch domain.PotPatch) (*domain.Pot, error) {
	var updated *domain.Pot
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if err := tx.Pots.Lock(ctx, id); err != nil {
			return err
		}
		p, err := tx.Pots.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("pot", id)
		}
		if err := patch.Apply(p); err != nil {
			return err
		}
		if err := tx.Pots.Update(ctx, p); err != nil {
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

// GetPotByQR looks a pot up by its label token.
func (s *TrackerService) GetPotByQR(ctx context.Context, token string) (*PotDetail, error) {
	pot, err := s.store.Pots.GetByQR(ctx, token)
	if err != nil {
		return nil, err
	}
	if pot == nil {
		return nil, domain.NotFound("pot", token)
	}

	open, err := s.store.Placements.OpenForPot(ctx, pot.ID)
	if err != nil {
		return nil, err
	}
	return s.potDetail(ctx, newResolver(s.store), pot, open)
}

// ListPots returns every pot with the plant currently in it.
func (s *TrackerService) ListPots(ctx context.Context) ([]*PotDetail, error) {
	pots, err := s.store.Pots.List(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.store.Placements.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	byPot := make(map[int64]*domain.Placement, len(open))
	for _, pl := range open {
		byPot[pl.PotID] = pl
	}

	r := newResolver(s.store)
	details := make([]*PotDetail, 0, len(pots))
	for _, pot := range pots {
		d, err := s.potDetail(ctx, r, pot, byPot[pot.ID])
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *TrackerService) potDetail(ctx context.Context, r *resolver, pot *domain.Pot, open *domain.Placement) (*PotDetail, error) {
	d := &PotDetail{Pot: pot, QRCodePath: qrcode.Path(pot.QRCodeID)}
	if open == nil {
		return d, nil
	}

	var err error
	if d.CurrentPlant, err = r.plants.get(ctx, open.PlantID); err != nil {
		return nil, fmt.Errorf("failed to resolve plant for pot %d: %w", pot.ID, err)
	}
	if d.CurrentSoil, err = r.soils.get(ctx, open.SoilID); err != nil {
		return nil, fmt.Errorf("failed to resolve soil for pot %d: %w", pot.ID, err)
	}
	start := open.StartDate
	d.StartDate = &start
	return d, nil
}
