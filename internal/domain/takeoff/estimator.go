package takeoff

import (
	"math"
	"strconv"
	"strings"
)

// Dimensions are the caller-supplied measurements for one estimate.
// Width only matters for volume-class work.
type Dimensions struct {
	Length float64
	Height float64
	Width  float64
}

// NewDimensions clamps negative and non-finite values to zero. Bad
// input never fails an estimate; it just produces no line items.
func NewDimensions(length, height, width float64) Dimensions {
	return Dimensions{
		Length: sanitize(length),
		Height: sanitize(height),
		Width:  sanitize(width),
	}
}

// ParseDimensions builds Dimensions from raw form fields. Empty or
// non-numeric fields coerce to zero, matching live-form input where
// partial entry is normal rather than exceptional.
func ParseDimensions(length, height, width string) Dimensions {
	return NewDimensions(parseField(length), parseField(height), parseField(width))
}

func parseField(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// WorkQuantity is the scalar measure of one activity instance:
// length*height for area-class work, length*height*width otherwise.
func WorkQuantity(p ActivityYieldProfile, d Dimensions) float64 {
	if p.WorkUnit == AreaClass {
		return d.Length * d.Height
	}
	return d.Length * d.Height * d.Width
}

// ComputeLineItems converts dimensions into required-material
// quantities using the profile's yield table. Pure; never fails. A
// non-positive work quantity means insufficient input and yields an
// empty result.
func ComputeLineItems(p ActivityYieldProfile, d Dimensions) []MaterialLineItem {
	workQty := WorkQuantity(p, d)
	items := []MaterialLineItem{}
	if workQty <= 0 {
		return items
	}
	for _, r := range p.Ratios {
		items = append(items, MaterialLineItem{
			MaterialName: r.MaterialName,
			Quantity:     ceilToHundredths(workQty * r.Ratio),
			Unit:         r.Unit,
			Status:       StatusPending,
		})
	}
	return items
}

// Summarize assembles a record from an already-computed estimate; no
// further calculation beyond re-deriving the work quantity for the
// area field.
func Summarize(p ActivityYieldProfile, d Dimensions, items []MaterialLineItem) TakeoffRecord {
	rec := TakeoffRecord{
		Activity:   p.Name,
		Dimensions: d,
		Items:      items,
	}
	if p.WorkUnit == AreaClass {
		rec.Area = WorkQuantity(p, d)
	}
	return rec
}

// ceilToHundredths rounds up to 2 decimals so an estimate never
// under-provisions material. The epsilon keeps values that are already
// exact hundredths from being pushed a cent higher by float noise
// (0.01*2 is not exactly 0.02 in binary).
func ceilToHundredths(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Ceil(x*100-1e-9) / 100
}
