package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetalCost(t *testing.T) {
	assert.Equal(t, 227.5, MetalCost(45.5, 5))
	assert.Equal(t, 0.0, MetalCost(0, 5))
	assert.Equal(t, 0.0, MetalCost(45.5, 0))
	assert.Equal(t, 0.0, MetalCost(-10, 5))
}

func TestMetalCostWithMultiplier(t *testing.T) {
	assert.Equal(t, 455.0, MetalCostWithMultiplier(45.5, 5, 2))
	// A zero multiplier means "not set" and leaves the raw cost alone.
	assert.Equal(t, 227.5, MetalCostWithMultiplier(45.5, 5, 0))
}

func TestStonePrice(t *testing.T) {
	assert.Equal(t, 3050.0, StonePrice(2000, 1.525))
	assert.Equal(t, 0.0, StonePrice(2000, 0))
	assert.Equal(t, 0.0, StonePrice(0, 1.5))
}

func TestTotalPriceSkipsAbsentComponents(t *testing.T) {
	assert.Equal(t, 500.0, TotalPrice(300, 200))
	assert.Equal(t, 300.0, TotalPrice(300, 0))
	assert.Equal(t, 0.0, TotalPrice(0, 0))
	assert.Equal(t, 200.0, TotalPrice(-50, 200))
}
