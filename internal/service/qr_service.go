package service

import (
	"context"
)

// QRSweepResult summarises one EnsureQRImages pass.
type QRSweepResult struct {
	Checked   int      `json:"checked"`
	Generated []string `json:"generated"`
	Failed    []string `json:"failed"`
}

// EnsureQRImages generates a label image for every pot that lacks one.
// Existing images are left untouched, so a second pass generates nothing.
// Per-pot failures are logged and reported in Failed.
func (s *TrackerService) EnsureQRImages(ctx context.Context) (*QRSweepResult, error) {
	pots, err := s.store.Pots.List(ctx)
	if err != nil {
		return nil, err
	}

	res := &QRSweepResult{Generated: []string{}, Failed: []string{}}
	for _, pot := range pots {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++
		_, created, err := s.qr.Ensure(ctx, pot.QRCodeID, "")
		if err != nil {
			s.logger.Error("failed to ensure qr image", "pot_id", pot.ID, "qr_code_id", pot.QRCodeID, "error", err)
			res.Failed = append(res.Failed, pot.QRCodeID)
			continue
		}
		if created {
			res.Generated = append(res.Generated, pot.QRCodeID)
		}
	}

	s.logger.Info("qr sweep complete", "checked", res.Checked, "generated", len(res.Generated), "failed", len(res.Failed))
	return res, nil
}
