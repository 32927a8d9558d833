package projection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type flatField float64

func (f flatField) Sample(u, v float64) float64 { return float64(f) }

type rampField struct{}

func (rampField) Sample(u, v float64) float64 { return u }

func TestDisplacementNilFieldPassThrough(t *testing.T) {
	p := PlaneSphere{Radius: testRadius}
	pt := p.Forward(0.3, 0.7, 0.5)
	got := Displacement{}.Apply(0.3, 0.7, pt)
	require.Equal(t, pt.Position, got)
}

func TestDisplacementOffsetsAlongNormal(t *testing.T) {
	p := PlaneSphere{Radius: testRadius}
	pt := p.Forward(0.5, 0.5, 0)

	d := Displacement{Field: flatField(1), Scale: 10, Bias: 0}
	got := d.Apply(0.5, 0.5, pt)

	// The flat map normal faces -z; positive elevation displaces against
	// the normal, to +z.
	diff := got.Sub(pt.Position)
	require.InDelta(t, 0, diff.X(), 1e-9)
	require.InDelta(t, 0, diff.Y(), 1e-9)
	require.InDelta(t, 10, diff.Z(), 1e-9)
}

func TestDisplacementBias(t *testing.T) {
	p := PlaneSphere{Radius: testRadius}
	pt := p.Forward(0.5, 0.5, 0)

	// Elevation equal to the bias is a no-op.
	d := Displacement{Field: flatField(0.4), Scale: 25, Bias: 0.4}
	require.Equal(t, pt.Position, d.Apply(0.5, 0.5, pt))
}

func TestDisplacementUOffsetShiftsLookup(t *testing.T) {
	p := PlaneSphere{Radius: testRadius}
	pt := p.Forward(0.9, 0.5, 0)

	// With a 0.2 scroll the lookup at u=0.9 reads the field at 0.1.
	d := Displacement{Field: rampField{}, Scale: 1, UOffset: 0.2}
	diff := d.Apply(0.9, 0.5, pt).Sub(pt.Position)
	require.InDelta(t, 0.1, diff.Z(), 1e-9)
}
