package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testPlant() *Plant {
	return &Plant{
		Name:      "Monstera",
		Family:    "Araceae",
		Genus:     "Monstera",
		Species:   "deliciosa",
		Variation: strPtr("Thai Constellation"),
		Size:      SizeMedium,
		Status:    StatusActive,
		DateAdded: MustParseDate("2024-01-01"),
		Notes:     strPtr("by the window"),
	}
}

func TestPlantPatchAbsentFieldsUnchanged(t *testing.T) {
	var patch PlantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Swiss Cheese Plant"}`), &patch))

	p := testPlant()
	require.NoError(t, patch.Apply(p))

	assert.Equal(t, "Swiss Cheese Plant", p.Name)
	assert.Equal(t, "Araceae", p.Family)
	require.NotNil(t, p.Notes)
	assert.Equal(t, "by the window", *p.Notes)
}

func TestPlantPatchExplicitNullClears(t *testing.T) {
	var patch PlantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null,"variation":null}`), &patch))
	assert.True(t, patch.Notes.Set)

	p := testPlant()
	require.NoError(t, patch.Apply(p))

	assert.Nil(t, p.Notes)
	assert.Nil(t, p.Variation)
	assert.Equal(t, "Monstera", p.Name)
}

func TestPlantPatchRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":""}`},
		{"null genus", `{"genus":null}`},
		{"unknown size", `{"size":"enormous"}`},
		{"null date", `{"date_added":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch PlantPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.ErrorIs(t, patch.Apply(testPlant()), ErrValidation)
		})
	}
}

func TestPlantPatchNullLeavesPlantUntouched(t *testing.T) {
	var patch PlantPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Renamed","date_added":null}`), &patch))

	p := testPlant()
	err := patch.Apply(p)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "date_added")
	assert.Equal(t, "Monstera", p.Name)
	assert.Equal(t, "2024-01-01", p.DateAdded.String())
}

func TestPlantPatchMalformedDate(t *testing.T) {
	var patch PlantPatch
	err := json.Unmarshal([]byte(`{"date_added":"01-01-2024"}`), &patch)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, strings.Count(err.Error(), ErrValidation.Error()))
}

func TestPotPatch(t *testing.T) {
	pot := &Pot{QRCodeID: "ab12cd34", Room: "Living Room", Size: "15cm", Active: true}
	require.NoError(t, PotPatch{Active: Some(false), Notes: Some(strPtr("cracked"))}.Apply(pot))

	assert.False(t, pot.Active)
	assert.Equal(t, "cracked", *pot.Notes)
	assert.Equal(t, "Living Room", pot.Room)

	assert.ErrorIs(t, PotPatch{Room: Some("  ")}.Apply(pot), ErrValidation)
}

func TestPotPatchRejectsNull(t *testing.T) {
	for _, body := range []string{`{"active":null}`, `{"room":null}`, `{"size":null}`} {
		t.Run(body, func(t *testing.T) {
			var patch PotPatch
			require.NoError(t, json.Unmarshal([]byte(body), &patch))

			pot := &Pot{QRCodeID: "ab12cd34", Room: "Living Room", Size: "15cm", Active: true}
			assert.ErrorIs(t, patch.Apply(pot), ErrValidation)
			assert.True(t, pot.Active)
			assert.Equal(t, "Living Room", pot.Room)
		})
	}
}

func TestPotPatchNullNotesClears(t *testing.T) {
	var patch PotPatch
	require.NoError(t, json.Unmarshal([]byte(`{"notes":null}`), &patch))

	pot := &Pot{QRCodeID: "ab12cd34", Room: "Living Room", Size: "15cm", Notes: strPtr("cracked"), Active: true}
	require.NoError(t, patch.Apply(pot))
	assert.Nil(t, pot.Notes)
	assert.True(t, pot.Active)
}

func TestSoilPatchRejectsNullActive(t *testing.T) {
	var patch SoilPatch
	require.NoError(t, json.Unmarshal([]byte(`{"active":null}`), &patch))

	soil := &Soil{Name: "Aroid Mix", Composition: "bark, perlite, coir", Active: true}
	assert.ErrorIs(t, patch.Apply(soil), ErrValidation)
	assert.True(t, soil.Active)
}

func TestSoilPatch(t *testing.T) {
	soil := &Soil{Name: "Aroid Mix", Composition: "bark, perlite, coir", Active: true}
	require.NoError(t, SoilPatch{Composition: Some("bark 2: perlite 1")}.Apply(soil))
	assert.Equal(t, "bark 2: perlite 1", soil.Composition)
	assert.Equal(t, "Aroid Mix", soil.Name)
}

func TestValidatePlantListsMissingFields(t *testing.T) {
	err := ValidatePlant(&Plant{Size: SizeSmall, DateAdded: MustParseDate("2024-01-01")})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name, family, genus, species")
}
