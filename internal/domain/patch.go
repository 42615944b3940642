package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Optional is one field of a partial update. A zero Optional leaves the
// stored value unchanged; a set Optional overwrites it, including with nil
// when T is a pointer type. Null on any other T is rejected by Apply.
type Optional[T any] struct {
	Value T
	Set   bool
	null  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document, which is
// what makes presence (including an explicit null) distinguishable from
// absence.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.Value = zero
		o.null = true
		return nil
	}
	if err := json.Unmarshal(b, &o.Value); err != nil {
		if errors.Is(err, ErrValidation) {
			return err
		}
		return Invalid("%v", err)
	}
	return nil
}

func (o Optional[T]) apply(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

type PlantPatch struct {
	Name      Optional[string]    `json:"name"`
	Family    Optional[string]    `json:"family"`
	Genus     Optional[string]    `json:"genus"`
	Species   Optional[string]    `json:"species"`
	Species2  Optional[*string]   `json:"species2"`
	Variation Optional[*string]   `json:"variation"`
	Size      Optional[PlantSize] `json:"size"`
	DateAdded Optional[Date]      `json:"date_added"`
	Notes     Optional[*string]   `json:"notes"`
}

// Apply writes the set fields onto p and validates the result.
func (pp PlantPatch) Apply(p *Plant) error {
	if err := notNull(
		nullField{"name", pp.Name.null},
		nullField{"family", pp.Family.null},
		nullField{"genus", pp.Genus.null},
		nullField{"species", pp.Species.null},
		nullField{"size", pp.Size.null},
		nullField{"date_added", pp.DateAdded.null},
	); err != nil {
		return err
	}
	pp.Name.apply(&p.Name)
	pp.Family.apply(&p.Family)
	pp.Genus.apply(&p.Genus)
	pp.Species.apply(&p.Species)
	pp.Species2.apply(&p.Species2)
	pp.Variation.apply(&p.Variation)
	pp.Size.apply(&p.Size)
	pp.DateAdded.apply(&p.DateAdded)
	pp.Notes.apply(&p.Notes)
	return ValidatePlant(p)
}

type PotPatch struct {
	Room   Optional[string]  `json:"room"`
	Size   Optional[string]  `json:"size"`
	Notes  Optional[*string] `json:"notes"`
	Active Optional[bool]    `json:"active"`
}

func (pp PotPatch) Apply(p *Pot) error {
	if err := notNull(
		nullField{"room", pp.Room.null},
		nullField{"size", pp.Size.null},
		nullField{"active", pp.Active.null},
	); err != nil {
		return err
	}
	pp.Room.apply(&p.Room)
	pp.Size.apply(&p.Size)
	pp.Notes.apply(&p.Notes)
	pp.Active.apply(&p.Active)
	return ValidatePot(p)
}

type SoilPatch struct {
	Name        Optional[string] `json:"name"`
	Composition Optional[string] `json:"composition"`
	Active      Optional[bool]   `json:"active"`
}

func (sp SoilPatch) Apply(s *Soil) error {
	if err := notNull(
		nullField{"name", sp.Name.null},
		nullField{"composition", sp.Composition.null},
		nullField{"active", sp.Active.null},
	); err != nil {
		return err
	}
	sp.Name.apply(&s.Name)
	sp.Composition.apply(&s.Composition)
	sp.Active.apply(&s.Active)
	return ValidateSoil(s)
}

func ValidatePlant(p *Plant) error {
	if err := required(
		field{"name", p.Name},
		field{"family", p.Family},
		field{"genus", p.Genus},
		field{"species", p.Species},
	); err != nil {
		return err
	}
	if !p.Size.Valid() {
		return Invalid("size %q must be one of seedling, small, medium, large, giant", p.Size)
	}
	if p.DateAdded.IsZero() {
		return Invalid("date_added is required")
	}
	return nil
}

func ValidatePot(p *Pot) error {
	return required(field{"room", p.Room}, field{"size", p.Size})
}

func ValidateSoil(s *Soil) error {
	return required(field{"name", s.Name}, field{"composition", s.Composition})
}

type field struct {
	name  string
	value string
}

func required(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Invalid("missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// nullField records whether a non-nullable patch field was sent as null.
type nullField struct {
	name string
	null bool
}

func notNull(fields ...nullField) error {
	var nulls []string
	for _, f := range fields {
		if f.null {
			nulls = append(nulls, f.name)
		}
	}
	if len(nulls) > 0 {
		return Invalid("field(s) cannot be null: %s", strings.Join(nulls, ", "))
	}
	return nil
}
