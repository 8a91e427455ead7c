package units

import "time"

type Category string

const (
	CategoryMass   Category = "mass"
	CategoryVolume Category = "volume"
	CategoryLength Category = "length"
	CategoryCount  Category = "count"
)

// Unit is one measurement unit in the catalog. Factor expresses
// "1 of this unit = Factor base units of its category"; the base
// unit of a category always carries Factor 1.0.
type Unit struct {
	ID        int64
	Name      string
	Symbol    string
	Category  Category
	Factor    float64
	IsBase    bool
	CreatedAt time.Time
}

// Changes carries the editable fields for Update; nil means "leave as is".
type Changes struct {
	Name     *string
	Symbol   *string
	Category *Category
	Factor   *float64
	IsBase   *bool
}
