package textindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	a := Vector{{Index: 0, Weight: 1}, {Index: 2, Weight: 2}, {Index: 5, Weight: 3}}
	b := Vector{{Index: 2, Weight: 4}, {Index: 3, Weight: 1}, {Index: 5, Weight: 1}}

	assert.InDelta(t, 11.0, Dot(a, b), 1e-12)
	assert.Zero(t, Dot(a, nil))
}

func TestVector_Normalize(t *testing.T) {
	v := Vector{{Index: 0, Weight: 3}, {Index: 1, Weight: 4}}
	v.Normalize()

	assert.InDelta(t, 0.6, v[0].Weight, 1e-12)
	assert.InDelta(t, 0.8, v[1].Weight, 1e-12)
	assert.InDelta(t, 1.0, v.Norm(), 1e-12)

	var zero Vector
	zero.Normalize()
	assert.Empty(t, zero)
}

func TestCosine(t *testing.T) {
	a := Vector{{Index: 0, Weight: 2}}
	b := Vector{{Index: 0, Weight: 5}}
	c := Vector{{Index: 1, Weight: 1}}

	assert.InDelta(t, 1.0, Cosine(a, b), 1e-12)
	assert.Zero(t, Cosine(a, c))
	assert.Zero(t, Cosine(a, Vector{}))
}
