package store

import (
	"context"
	"fmt"

	"github.com/vbonduro/planttracker/internal/domain"
)

const potColumns = `id, qr_code_id, room, size, notes, active`

type PotStore struct {
	db DBTX
}

func NewPotStore(db DBTX) *PotStore {
	return &PotStore{db: db}
}

// Create inserts p. A clash on qr_code_id is reported as domain.ErrConflict.
func (s *PotStore) Create(ctx context.Context, p *domain.Pot) (*domain.Pot, error) {
	id, err := insert(ctx, s.db, `
		INSERT INTO pots (qr_code_id, room, size, notes, active) VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, p.QRCodeID, p.Room, p.Size, p.Notes, p.Active)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("qr code %q already in use: %w", p.QRCodeID, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create pot: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *PotStore) GetByID(ctx context.Context, id int64) (*domain.Pot, error) {
	p, err := get[domain.Pot](ctx, s.db, `SELECT `+potColumns+` FROM pots WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pot: %w", err)
	}
	return p, nil
}

func (s *PotStore) GetByQR(ctx context.Context, qrCodeID string) (*domain.Pot, error) {
	p, err := get[domain.Pot](ctx, s.db, `SELECT `+potColumns+` FROM pots WHERE qr_code_id = ?`, qrCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pot by qr code: %w", err)
	}
	return p, nil
}

func (s *PotStore) QRExists(ctx context.Context, qrCodeID string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(`SELECT COUNT(*) FROM pots WHERE qr_code_id = ?`), qrCodeID); err != nil {
		return false, fmt.Errorf("failed to check qr code: %w", err)
	}
	return n > 0, nil
}

func (s *PotStore) List(ctx context.Context) ([]*domain.Pot, error) {
	pots, err := list[domain.Pot](ctx, s.db, `SELECT `+potColumns+` FROM pots ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pots: %w", err)
	}
	return pots, nil
}

// Update overwrites the mutable columns. The QR token never changes once
// issued because printed labels point at it.
func (s *PotStore) Update(ctx context.Context, p *domain.Pot) error {
	n, err := exec(ctx, s.db, `
		UPDATE pots SET room = ?, size = ?, notes = ?, active = ? WHERE id = ?
	`, p.Room, p.Size, p.Notes, p.Active, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update pot: %w", err)
	}
	if n == 0 {
		return domain.NotFound("pot", p.ID)
	}
	return nil
}

func (s *PotStore) Lock(ctx context.Context, id int64) error {
	return lockRow(ctx, s.db, "pots", id)
}
