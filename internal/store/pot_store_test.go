package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/planttracker/internal/domain"
)

func TestPotStoreCreateAndGetByQR(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := seedPot(t, s, "ab12cd34")
	assert.NotZero(t, created.ID)
	assert.True(t, created.Active)

	got, err := s.Pots.GetByQR(ctx, "ab12cd34")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Living Room", got.Room)

	missing, err := s.Pots.GetByQR(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPotStoreDuplicateQRIsConflict(t *testing.T) {
	s := openTestStore(t)
	seedPot(t, s, "ab12cd34")

	_, err := s.Pots.Create(context.Background(), &domain.Pot{QRCodeID: "ab12cd34", Room: "Office", Size: "10cm", Active: true})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPotStoreQRExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedPot(t, s, "ab12cd34")

	exists, err := s.Pots.QRExists(ctx, "ab12cd34")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Pots.QRExists(ctx, "ffffffff")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPotStoreUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	pot := seedPot(t, s, "ab12cd34")

	pot.Room = "Bedroom"
	pot.Active = false
	pot.Notes = strPtr("terracotta")
	require.NoError(t, s.Pots.Update(ctx, pot))

	got, err := s.Pots.GetByID(ctx, pot.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bedroom", got.Room)
	assert.False(t, got.Active)
	assert.Equal(t, "terracotta", *got.Notes)
	assert.Equal(t, "ab12cd34", got.QRCodeID)

	err = s.Pots.Update(ctx, &domain.Pot{ID: 999, Room: "x", Size: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSoilStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	soil := seedSoil(t, s)

	soil.Active = false
	soil.Composition = "bark 2: perlite 1: coir 1"
	require.NoError(t, s.Soils.Update(ctx, soil))

	soils, err := s.Soils.List(ctx)
	require.NoError(t, err)
	require.Len(t, soils, 1)
	assert.False(t, soils[0].Active)
	assert.Equal(t, "bark 2: perlite 1: coir 1", soils[0].Composition)

	err = s.Soils.Update(ctx, &domain.Soil{ID: 999, Name: "x", Composition: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
