package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestNormalizeClampsNumericFields(t *testing.T) {
	p := Project{Budget: -100, Workers: -2, EtaWeeks: -3, Progress: 150}.Normalize()
	assert.Equal(t, 0.0, p.Budget)
	assert.Equal(t, 0, p.Workers)
	assert.Equal(t, 0.0, p.EtaWeeks)
	// 100 progress flips the project into finished.
	assert.True(t, p.Finished)
	assert.Equal(t, 100, p.Progress)
}

func TestNormalizeFinishedPinsProgress(t *testing.T) {
	p := Project{Finished: true, Progress: 40}.Normalize()
	assert.True(t, p.Finished)
	assert.Equal(t, 100, p.Progress)
}

func TestNormalizeCoordinates(t *testing.T) {
	t.Run("both finite survive", func(t *testing.T) {
		p := Project{Latitude: f64(48.2082), Longitude: f64(16.3738)}.Normalize()
		require.True(t, p.HasCoordinates())
		assert.InDelta(t, 48.2082, *p.Latitude, 1e-9)
	})

	t.Run("lone coordinate is dropped", func(t *testing.T) {
		p := Project{Latitude: f64(48.2082)}.Normalize()
		assert.Nil(t, p.Latitude)
		assert.Nil(t, p.Longitude)
	})

	t.Run("NaN drops both", func(t *testing.T) {
		p := Project{Latitude: f64(math.NaN()), Longitude: f64(16.3738)}.Normalize()
		assert.Nil(t, p.Latitude)
		assert.Nil(t, p.Longitude)
	})

	t.Run("infinity drops both", func(t *testing.T) {
		p := Project{Latitude: f64(48.2082), Longitude: f64(math.Inf(1))}.Normalize()
		assert.Nil(t, p.Latitude)
		assert.Nil(t, p.Longitude)
	})
}
