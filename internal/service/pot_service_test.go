package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/planttracker/internal/domain"
)

func TestCreatePotGeneratesImage(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePot(ctx, NewPot{Room: "Living Room", Size: "15cm", Notes: strPtr("terracotta")})
	require.NoError(t, err)
	assert.Len(t, created.QRCodeID, 8)
	assert.True(t, created.Active)
	assert.Equal(t, "/qrcodes/"+created.QRCodeID+".png", created.QRCodePath)

	ok, err := images.Exists(ctx, created.QRCodeID+".png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreatePotInactive(t *testing.T) {
	svc, _ := newTestService(t)
	inactive := false

	created, err := svc.CreatePot(context.Background(), NewPot{Room: "Shed", Size: "30cm", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, created.Active)
}

func TestCreatePotTokensAreUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 25; i++ {
		created, err := svc.CreatePot(ctx, NewPot{Room: "Greenhouse", Size: "10cm"})
		require.NoError(t, err)
		assert.False(t, seen[created.QRCodeID], created.QRCodeID)
		seen[created.QRCodeID] = true
	}
}

func TestCreatePotRetriesOnCollision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tokens := []string{"aaaaaaaa", "aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	svc.newToken = func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}

	first, err := svc.CreatePot(ctx, NewPot{Room: "A", Size: "1"})
	require.NoError(t, err)
	assert.Equal(t, "aaaaaaaa", first.QRCodeID)

	second, err := svc.CreatePot(ctx, NewPot{Room: "B", Size: "2"})
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb", second.QRCodeID)
}

func TestCreatePotTokenExhausted(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.newToken = func() string { return "cccccccc" }
	_, err := svc.CreatePot(ctx, NewPot{Room: "A", Size: "1"})
	require.NoError(t, err)

	_, err = svc.CreatePot(ctx, NewPot{Room: "B", Size: "2"})
	assert.ErrorIs(t, err, domain.ErrTokenExhausted)

	pots, err := svc.ListPots(ctx)
	require.NoError(t, err)
	assert.Len(t, pots, 1)
}

func TestCreatePotImageFailureIsNotFatal(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()
	images.putErr = errDiskFull

	created, err := svc.CreatePot(ctx, NewPot{Room: "Living Room", Size: "15cm"})
	require.NoError(t, err)
	assert.Empty(t, created.QRCodePath)

	got, err := svc.GetPotByQR(ctx, created.QRCodeID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// The sweep repairs the missing image once storage recovers.
	images.putErr = nil
	res, err := svc.EnsureQRImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{created.QRCodeID}, res.Generated)
}

func TestCreatePotValidation(t *testing.T) {
	svc, images := newTestService(t)

	_, err := svc.CreatePot(context.Background(), NewPot{Size: "15cm"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "room")
	assert.Zero(t, images.putCount())
}

func TestCreatePotWithBaseURLOverride(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePot(ctx, NewPot{Room: "Office", Size: "12cm", BaseURL: "https://plants.example.org"})
	require.NoError(t, err)

	r, _, err := images.Get(ctx, created.QRCodeID+".png")
	require.NoError(t, err)
	defer r.Close()
}

func TestUpdatePot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	pot := mustPot(t, svc, "Living Room")

	var patch domain.PotPatch
	require.NoError(t, json.Unmarshal([]byte(`{"room":"Kitchen","active":false}`), &patch))
	updated, err := svc.UpdatePot(ctx, pot.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen", updated.Room)
	assert.False(t, updated.Active)
	assert.Equal(t, "15cm", updated.Size)
	assert.Equal(t, pot.QRCodeID, updated.QRCodeID)

	_, err = svc.UpdatePot(ctx, 999, patch)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPotByQR(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	pot := mustPot(t, svc, "Living Room")

	empty, err := svc.GetPotByQR(ctx, pot.QRCodeID)
	require.NoError(t, err)
	assert.Nil(t, empty.CurrentPlant)
	assert.Nil(t, empty.CurrentSoil)
	assert.Nil(t, empty.StartDate)

	plant := mustPlant(t, svc, "Monstera")
	soil := mustSoil(t, svc, "Aroid Mix")
	mustMove(t, svc, plant, pot, soil, "2024-01-01")

	got, err := svc.GetPotByQR(ctx, pot.QRCodeID)
	require.NoError(t, err)
	assert.Equal(t, plant.ID, got.CurrentPlant.ID)
	assert.Equal(t, soil.ID, got.CurrentSoil.ID)
	assert.Equal(t, "2024-01-01", got.StartDate.String())

	_, err = svc.GetPotByQR(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "pot nope")
}

func TestListPots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	occupied := mustPot(t, svc, "Living Room")
	mustPot(t, svc, "Bedroom")
	plant := mustPlant(t, svc, "Monstera")
	soil := mustSoil(t, svc, "Aroid Mix")
	mustMove(t, svc, plant, occupied, soil, "2024-01-01")

	pots, err := svc.ListPots(ctx)
	require.NoError(t, err)
	require.Len(t, pots, 2)
	assert.Equal(t, plant.ID, pots[0].CurrentPlant.ID)
	assert.Nil(t, pots[1].CurrentPlant)
}

func TestEnsureQRImagesIsIdempotent(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()
	a := mustPot(t, svc, "A")
	b := mustPot(t, svc, "B")
	mustPot(t, svc, "C")

	require.NoError(t, images.Delete(ctx, a.QRCodeID+".png"))
	require.NoError(t, images.Delete(ctx, b.QRCodeID+".png"))
	putsBefore := images.putCount()

	res, err := svc.EnsureQRImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Checked)
	assert.ElementsMatch(t, []string{a.QRCodeID, b.QRCodeID}, res.Generated)
	assert.Empty(t, res.Failed)
	assert.Equal(t, putsBefore+2, images.putCount())

	res, err = svc.EnsureQRImages(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Generated)
	assert.Equal(t, putsBefore+2, images.putCount())
}

func TestEnsureQRImagesReportsFailures(t *testing.T) {
	svc, images := newTestService(t)
	ctx := context.Background()
	pot := mustPot(t, svc, "A")
	require.NoError(t, images.Delete(ctx, pot.QRCodeID+".png"))
	images.putErr = errDiskFull

	res, err := svc.EnsureQRImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{pot.QRCodeID}, res.Failed)
	assert.Empty(t, res.Generated)
}
