package comparison

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(45.815, 15.9819, 45.815, 15.9819))
}

func TestHaversineSymmetry(t *testing.T) {
	d1 := HaversineKm(45.815, 15.9819, 43.5081, 16.4402) // Zagreb -> Split
	d2 := HaversineKm(43.5081, 16.4402, 45.815, 15.9819) // Split -> Zagreb
	assert.Equal(t, d1, d2)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Zagreb to Split is roughly 259 km great-circle.
	d := HaversineKm(45.815, 15.9819, 43.5081, 16.4402)
	assert.InDelta(t, 259, d, 5)
}

func TestHaversineNaNPropagates(t *testing.T) {
	d := HaversineKm(math.NaN(), 0, 0, 0)
	assert.True(t, math.IsNaN(d))
}

func TestDistanceToNilLocation(t *testing.T) {
	m := MarketSummary{ID: "m1", Latitude: 10, Longitude: 10}
	assert.Nil(t, distanceTo(nil, m))
}

func TestDistanceToColocated(t *testing.T) {
	m := MarketSummary{ID: "m1", Latitude: 10, Longitude: 10}
	d := distanceTo(&Coordinates{Latitude: 10, Longitude: 10}, m)
	// Co-located must be a defined zero, not "unknown".
	assert.NotNil(t, d)
	assert.Equal(t, 0.0, *d)
}
