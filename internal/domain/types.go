package domain

type PlantSize string

const (
	SizeSeedling PlantSize = "seedling"
	SizeSmall    PlantSize = "small"
	SizeMedium   PlantSize = "medium"
	SizeLarge    PlantSize = "large"
	SizeGiant    PlantSize = "giant"
)

// Valid reports whether s is one of the known plant sizes.
func (s PlantSize) Valid() bool {
	switch s {
	case SizeSeedling, SizeSmall, SizeMedium, SizeLarge, SizeGiant:
		return true
	}
	return false
}

type PlantStatus string

const (
	StatusActive  PlantStatus = "active"
	StatusRemoved PlantStatus = "removed"
)

type Plant struct {
	ID            int64       `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	Family        string      `db:"family" json:"family"`
	Genus         string      `db:"genus" json:"genus"`
	Species       string      `db:"species" json:"species"`
	Species2      *string     `db:"species2" json:"species2"`
	Variation     *string     `db:"variation" json:"variation"`
	Size          PlantSize   `db:"size" json:"size"`
	Status        PlantStatus `db:"status" json:"status"`
	RemovedReason *string     `db:"removed_reason" json:"removed_reason"`
	DateAdded     Date        `db:"date_added" json:"date_added"`
	Notes         *string     `db:"notes" json:"notes"`
}

// Removed reports whether the plant has reached its terminal state.
func (p *Plant) Removed() bool {
	return p.Status == StatusRemoved
}

type Pot struct {
	ID       int64   `db:"id" json:"id"`
	QRCodeID string  `db:"qr_code_id" json:"qr_code_id"`
	Room     string  `db:"room" json:"room"`
	Size     string  `db:"size" json:"size"`
	Notes    *string `db:"notes" json:"notes"`
	Active   bool    `db:"active" json:"active"`
}

type Soil struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Composition string `db:"composition" json:"composition"`
	Active      bool   `db:"active" json:"active"`
}

// Placement records that a plant lived in a pot with a given soil mix over
// [StartDate, EndDate). A nil EndDate marks the open, current placement.
type Placement struct {
	ID        int64   `db:"id" json:"id"`
	PlantID   int64   `db:"plant_id" json:"plant_id"`
	PotID     int64   `db:"pot_id" json:"pot_id"`
	SoilID    int64   `db:"soil_id" json:"soil_id"`
	StartDate Date    `db:"start_date" json:"start_date"`
	EndDate   *Date   `db:"end_date" json:"end_date"`
	Notes     *string `db:"notes" json:"notes"`
}

func (p *Placement) Open() bool {
	return p.EndDate == nil
}
