package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/planttracker/internal/domain"
)

func TestPlantStoreCreate(t *testing.T) {
	s := openTestStore(t)

	p, err := s.Plants.Create(context.Background(), &domain.Plant{
		Name:      "String of Pearls",
		Family:    "Asteraceae",
		Genus:     "Curio",
		Species:   "rowleyanus",
		Species2:  strPtr("x"),
		Size:      domain.SizeSmall,
		Status:    domain.StatusActive,
		DateAdded: domain.MustParseDate("2023-05-20"),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "String of Pearls", p.Name)
	assert.Equal(t, domain.SizeSmall, p.Size)
	assert.Equal(t, "2023-05-20", p.DateAdded.String())
	require.NotNil(t, p.Species2)
	assert.Equal(t, "x", *p.Species2)
	assert.Nil(t, p.Variation)
	assert.Nil(t, p.Notes)
}

func TestPlantStoreRejectsUnknownSize(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Plants.Create(context.Background(), &domain.Plant{
		Name: "x", Family: "x", Genus: "x", Species: "x",
		Size:      domain.PlantSize("enormous"),
		Status:    domain.StatusActive,
		DateAdded: domain.MustParseDate("2024-01-01"),
	})
	assert.Error(t, err)
}

func TestPlantStoreGetByIDNotFound(t *testing.T) {
	s := openTestStore(t)

	p, err := s.Plants.GetByID(context.Background(), 99999)
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestPlantStoreList(t *testing.T) {
	s := openTestStore(t)
	seedPlant(t, s, "Monstera")
	seedPlant(t, s, "Pothos")

	plants, err := s.Plants.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "Monstera", plants[0].Name)
	assert.Equal(t, "Pothos", plants[1].Name)
}

func TestPlantStoreListEmpty(t *testing.T) {
	s := openTestStore(t)

	plants, err := s.Plants.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, plants)
	assert.Empty(t, plants)
}

func TestPlantStoreUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := seedPlant(t, s, "Monstera")

	p.Status = domain.StatusRemoved
	p.RemovedReason = strPtr("died")
	p.Notes = strPtr("root rot")
	require.NoError(t, s.Plants.Update(ctx, p))

	got, err := s.Plants.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRemoved, got.Status)
	assert.Equal(t, "died", *got.RemovedReason)
	assert.Equal(t, "root rot", *got.Notes)
}

func TestPlantStoreUpdateNotFound(t *testing.T) {
	s := openTestStore(t)

	err := s.Plants.Update(context.Background(), &domain.Plant{
		ID: 42, Name: "x", Family: "x", Genus: "x", Species: "x",
		Size: domain.SizeSmall, Status: domain.StatusActive, DateAdded: domain.MustParseDate("2024-01-01"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
