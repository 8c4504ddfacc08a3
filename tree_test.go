package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeNearest(t *testing.T) {
	t.Run("single node", func(t *testing.T) {
		tr := newTree(NewConfiguration(3, 3), 1)
		assert.Equal(t, 0, tr.nearest(NewConfiguration(-5, 7), squaredDistance))
		assert.Equal(t, 0, tr.nearest(NewConfiguration(3, 3), squaredDistance))
	})

	t.Run("ties resolve to lowest index", func(t *testing.T) {
		tr := newTree(NewConfiguration(10, 10), 5)
		tr.add(NewConfiguration(5, 5), 0, 0)
		tr.add(NewConfiguration(2, 0), 1, 0)  // index 2, distance 1 from target
		tr.add(NewConfiguration(1, 1), 1, 0)  // index 3, distance 1 from target
		tr.add(NewConfiguration(1, -1), 1, 0) // index 4, distance 1 from target

		target := NewConfiguration(1, 0)
		assert.Equal(t, 2, tr.nearest(target, squaredDistance))
		assert.Equal(t, 0, tr.nearest(NewConfiguration(7.5, 7.5), squaredDistance),
			"root and node 1 are equidistant")
	})

	t.Run("volumetric", func(t *testing.T) {
		tr := newTree(NewConfiguration3D(0, 0, 0), 3)
		tr.add(NewConfiguration3D(0, 0, 2), 0, 2)
		tr.add(NewConfiguration3D(0, 0, 4), 1, 2)
		assert.Equal(t, 2, tr.nearest(NewConfiguration3D(0, 0, 5), distance3D))
		assert.Equal(t, 0, tr.nearest(NewConfiguration3D(0, 0, 1), distance3D))
	})
}

func TestTreePathAndEdges(t *testing.T) {
	tr := newTree(NewConfiguration(0, 0), 4)
	a := tr.add(NewConfiguration(1, 0), 0, 1)
	b := tr.add(NewConfiguration(1, 1), a, 1)
	tr.add(NewConfiguration(0, 1), 0, 1)

	require.Equal(t, 4, tr.len())
	assert.Equal(t, []Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, tr.pathTo(b))
	assert.Equal(t, []Configuration{{X: 0, Y: 0}}, tr.pathTo(0))
	assert.Equal(t, []Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
		{From: 0, To: 3, Weight: 1},
	}, tr.edges())
}
