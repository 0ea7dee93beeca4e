package simulation

import (
	"math"

	"cityflow/simulator/models"
)

// Interpolate places a token with the given progress on a path of n nodes
// (n-1 equally weighted segments). Progress past the last segment stays on
// the last node.
func Interpolate(path []models.LatLng, progress float64) models.LatLng {
	n := len(path)
	switch {
	case n == 0:
		return models.LatLng{}
	case n == 1 || progress <= 0:
		return path[0]
	}

	pos := progress * float64(n-1)
	segment := int(math.Floor(pos))
	if segment >= n-1 {
		return path[n-1]
	}
	return path[segment].Lerp(path[segment+1], pos-float64(segment))
}
