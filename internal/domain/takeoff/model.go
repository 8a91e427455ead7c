package takeoff

import (
	"time"

	"github.com/google/uuid"
)

// WorkUnitClass is the two-way split the yield tables are written
// against: an activity is measured either by area or by volume.
// Anything not area-class is volume-class.
type WorkUnitClass string

const (
	AreaClass   WorkUnitClass = "area"
	VolumeClass WorkUnitClass = "volume"
)

// MaterialRatio is one yield entry: Ratio units of the material are
// consumed per unit of work. Duplicate material names are legal and
// are never merged.
type MaterialRatio struct {
	MaterialName string
	Ratio        float64
	Unit         string
}

// ActivityYieldProfile describes one constructible unit of work, e.g.
// "masonry wall" measured in m2 with brick/cement/sand ratios.
type ActivityYieldProfile struct {
	ID        int64
	Name      string
	WorkUnit  WorkUnitClass
	WorkSym   string // display symbol of the work unit, e.g. "m2"
	Ratios    []MaterialRatio
	CreatedAt time.Time
}

// StatusPending is the initial workflow tag on every computed line
// item; downstream consumers own all transitions.
const StatusPending = "Pending"

type MaterialLineItem struct {
	MaterialName string
	Quantity     float64
	Unit         string
	Status       string
}

// TakeoffRecord packages one estimate for persistence or display.
// Area is populated only for area-class work.
type TakeoffRecord struct {
	ID         uuid.UUID
	ProjectID  int64
	Activity   string
	Dimensions Dimensions
	Area       float64
	Items      []MaterialLineItem
	CreatedAt  time.Time
}
