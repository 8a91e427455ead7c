package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func masonryProfile() ActivityYieldProfile {
	return ActivityYieldProfile{
		Name:     "Mampostería",
		WorkUnit: AreaClass,
		WorkSym:  "m2",
		Ratios: []MaterialRatio{
			{MaterialName: "brick", Ratio: 12.5, Unit: "pcs"},
			{MaterialName: "cement", Ratio: 0.5, Unit: "bags"},
			{MaterialName: "sand", Ratio: 0.02, Unit: "m3"},
		},
	}
}

func TestComputeLineItems_MasonryWorkedExample(t *testing.T) {
	items := ComputeLineItems(masonryProfile(), NewDimensions(20, 3, 0))
	require.Len(t, items, 3)

	assert.Equal(t, "brick", items[0].MaterialName)
	assert.InDelta(t, 750.00, items[0].Quantity, 1e-9)
	assert.Equal(t, "pcs", items[0].Unit)

	assert.Equal(t, "cement", items[1].MaterialName)
	assert.InDelta(t, 30.00, items[1].Quantity, 1e-9)

	assert.Equal(t, "sand", items[2].MaterialName)
	assert.InDelta(t, 1.20, items[2].Quantity, 1e-9)

	for _, it := range items {
		assert.Equal(t, StatusPending, it.Status)
	}
}

func TestComputeLineItems_ConcreteVolume(t *testing.T) {
	p := ActivityYieldProfile{
		Name:     "Concreto estructural",
		WorkUnit: VolumeClass,
		WorkSym:  "m3",
		Ratios: []MaterialRatio{
			{MaterialName: "cement", Ratio: 7.5, Unit: "bags"},
			{MaterialName: "sand", Ratio: 0.65, Unit: "m3"},
			{MaterialName: "gravel", Ratio: 0.65, Unit: "m3"},
		},
	}
	items := ComputeLineItems(p, NewDimensions(2, 1, 1))
	require.Len(t, items, 3)
	assert.InDelta(t, 15.00, items[0].Quantity, 1e-9)
	assert.InDelta(t, 1.30, items[1].Quantity, 1e-9)
	assert.InDelta(t, 1.30, items[2].Quantity, 1e-9)
}

func TestComputeLineItems_ZeroDimensions(t *testing.T) {
	items := ComputeLineItems(masonryProfile(), NewDimensions(0, 0, 0))
	assert.Empty(t, items)

	// volume-class with a missing width degrades the same way
	p := masonryProfile()
	p.WorkUnit = VolumeClass
	items = ComputeLineItems(p, NewDimensions(20, 3, 0))
	assert.Empty(t, items)
}

func TestComputeLineItems_EmptyRatios(t *testing.T) {
	p := ActivityYieldProfile{Name: "empty", WorkUnit: AreaClass}
	items := ComputeLineItems(p, NewDimensions(20, 3, 0))
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestComputeLineItems_OrderAndDuplicatesPreserved(t *testing.T) {
	p := ActivityYieldProfile{
		Name:     "dup",
		WorkUnit: AreaClass,
		Ratios: []MaterialRatio{
			{MaterialName: "cement", Ratio: 0.5, Unit: "bags"},
			{MaterialName: "sand", Ratio: 0.02, Unit: "m3"},
			{MaterialName: "cement", Ratio: 0.25, Unit: "bags"},
		},
	}
	items := ComputeLineItems(p, NewDimensions(10, 2, 0))
	require.Len(t, items, 3)
	assert.Equal(t, "cement", items[0].MaterialName)
	assert.Equal(t, "sand", items[1].MaterialName)
	assert.Equal(t, "cement", items[2].MaterialName)
	assert.InDelta(t, 10.00, items[0].Quantity, 1e-9)
	assert.InDelta(t, 5.00, items[2].Quantity, 1e-9)
}

func TestComputeLineItems_Deterministic(t *testing.T) {
	p := masonryProfile()
	d := NewDimensions(7.3, 2.45, 0)
	first := ComputeLineItems(p, d)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ComputeLineItems(p, d))
	}
}

func TestComputeLineItems_CeilingNeverUnderProvisions(t *testing.T) {
	p := ActivityYieldProfile{
		Name:     "ratios",
		WorkUnit: AreaClass,
		Ratios: []MaterialRatio{
			{MaterialName: "a", Ratio: 0.333, Unit: "u"},
			{MaterialName: "b", Ratio: 1.0 / 3.0, Unit: "u"},
			{MaterialName: "c", Ratio: 0.001, Unit: "u"},
			{MaterialName: "d", Ratio: 12.5, Unit: "u"},
		},
	}
	dims := []Dimensions{
		NewDimensions(20, 3, 0),
		NewDimensions(1.7, 2.3, 0),
		NewDimensions(0.1, 0.1, 0),
		NewDimensions(99.99, 3.33, 0),
	}
	for _, d := range dims {
		workQty := WorkQuantity(p, d)
		items := ComputeLineItems(p, d)
		require.Len(t, items, len(p.Ratios))
		for i, it := range items {
			raw := workQty * p.Ratios[i].Ratio
			assert.GreaterOrEqual(t, it.Quantity, raw-1e-9,
				"rounded quantity must never drop below the raw value")
			assert.Less(t, it.Quantity-raw, 0.01,
				"ceiling must stay within one hundredth of the raw value")
		}
	}
}

func TestComputeLineItems_ExactHundredthUnchanged(t *testing.T) {
	// workQty*ratio lands exactly on 0.02; ceiling must keep it there,
	// not push it to 0.03.
	p := ActivityYieldProfile{
		Name:     "boundary",
		WorkUnit: AreaClass,
		Ratios:   []MaterialRatio{{MaterialName: "sand", Ratio: 0.01, Unit: "m3"}},
	}
	items := ComputeLineItems(p, NewDimensions(2, 1, 0))
	require.Len(t, items, 1)
	assert.InDelta(t, 0.02, items[0].Quantity, 1e-12)
}

func TestParseDimensions_BadInputCoercesToZero(t *testing.T) {
	d := ParseDimensions("20", "abc", "")
	assert.Equal(t, 20.0, d.Length)
	assert.Equal(t, 0.0, d.Height)
	assert.Equal(t, 0.0, d.Width)

	d = ParseDimensions(" 2.5 ", "-3", "1")
	assert.Equal(t, 2.5, d.Length)
	assert.Equal(t, 0.0, d.Height, "negative input normalizes to zero")
	assert.Equal(t, 1.0, d.Width)
}

func TestSummarize(t *testing.T) {
	p := masonryProfile()
	d := NewDimensions(20, 3, 0)
	items := ComputeLineItems(p, d)

	rec := Summarize(p, d, items)
	assert.Equal(t, "Mampostería", rec.Activity)
	assert.Equal(t, d, rec.Dimensions)
	assert.InDelta(t, 60.0, rec.Area, 1e-9)
	assert.Equal(t, items, rec.Items)

	p.WorkUnit = VolumeClass
	rec = Summarize(p, NewDimensions(2, 1, 1), nil)
	assert.Zero(t, rec.Area, "volume-class records carry no area")
}
