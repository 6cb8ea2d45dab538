package schedule

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoWorkers(t *testing.T) {
	cases := []struct {
		name   string
		budget float64
		want   int
	}{
		{"zero budget assigns nobody", 0, 0},
		{"negative budget assigns nobody", -500, 0},
		{"tiny budget still funds one worker", 100, 1},
		{"just under one worker slice rounds up to one", 2999, 1},
		{"one full slice", 3000, 1},
		{"ten workers", 30000, 10},
		{"fractional slices floor", 31000, 10},
		{"NaN budget assigns nobody", math.NaN(), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AutoWorkers(tc.budget))
		})
	}
}

func TestAutoWorkersMatchesFormula(t *testing.T) {
	// For any positive budget the headcount is max(1, floor(budget/2/1500)).
	for _, budget := range []float64{1, 1500, 2999, 3000, 4500, 12000, 99999} {
		want := int(math.Floor(budget / 2 / 1500))
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, AutoWorkers(budget), "budget %v", budget)
	}
}

func TestViolatesLaborCap(t *testing.T) {
	t.Run("violates when labor exceeds half the budget", func(t *testing.T) {
		assert.True(t, ViolatesLaborCap(10, 4991, 10000))
	})

	t.Run("holding exactly at the cap is allowed", func(t *testing.T) {
		assert.False(t, ViolatesLaborCap(10, 4990, 10000))
	})

	t.Run("no budget means no cap to enforce", func(t *testing.T) {
		assert.False(t, ViolatesLaborCap(1000, 100000, 0))
		assert.False(t, ViolatesLaborCap(1000, 100000, -1))
	})

	t.Run("contractor price alone can blow the cap", func(t *testing.T) {
		assert.True(t, ViolatesLaborCap(0, 5001, 10000))
		assert.False(t, ViolatesLaborCap(0, 5000, 10000))
	})
}

func TestLaborCapMessage(t *testing.T) {
	msg := LaborCapMessage(10, 4991, 10000)
	assert.Contains(t, msg, "Labor cap exceeded")
	assert.Contains(t, msg, "workers (10)")
	assert.Contains(t, msg, "cap is 5000")
}
