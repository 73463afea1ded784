package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticle_InvariantsRejected(t *testing.T) {
	_, err := New(-1, 0, 1, 0, 0)
	require.Error(t, err)

	_, err = New(10, 10, 0, 0, 0)
	require.Error(t, err, "nP must be >= 1")
}

func TestParticle_VolumeDiameterRoundTrip(t *testing.T) {
	p, err := New(100, 50, 1, 2, 0)
	require.NoError(t, err)

	d := p.Diameter()
	v := math.Pi / 6 * d * d * d
	assert.InDelta(t, p.Volume(), v, p.Volume()*1e-10, "diameter->volume round trip within 1e-10 relative")
}

func TestCoagulate_SumsCountsAndMinCreationTime(t *testing.T) {
	a, err := New(100, 50, 1, 2, 1.0)
	require.NoError(t, err)
	b, err := New(200, 80, 3, 4, 0.5)
	require.NoError(t, err)

	c := Coagulate(a, b)

	assert.Equal(t, a.NC+b.NC, c.NC)
	assert.Equal(t, a.NH+b.NH, c.NH)
	assert.Equal(t, a.NP+b.NP, c.NP)
	assert.Equal(t, a.NA+b.NA, c.NA)
	assert.Equal(t, 0.5, c.CreationTime)
	assert.InDelta(t, a.Mass()+b.Mass(), c.Mass(), 1e-20, "mass conserved to machine precision")
}

func TestCoagulate_FreshIdentity(t *testing.T) {
	a, _ := New(10, 5, 1, 0, 0)
	b, _ := New(10, 5, 1, 0, 0)
	c := Coagulate(a, b)
	assert.NotEqual(t, a.ID, c.ID)
	assert.NotEqual(t, b.ID, c.ID)
}
