package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHaversineDistance(t *testing.T) {
	assert.Equal(t, 0.0, CalculateHaversineDistance(41.0082, 28.9784, 41.0082, 28.9784))

	// Istanbul (Sultanahmet) to Ankara (Kizilay), roughly 350 km.
	d := CalculateHaversineDistance(41.0082, 28.9784, 39.9208, 32.8541)
	assert.InDelta(t, 350000, d, 5000)
}
