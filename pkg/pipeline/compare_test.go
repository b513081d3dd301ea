package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f1strategydash/pkg/model"
)

func TestCompareDrivers(t *testing.T) {
	p := newTestPipeline(t)
	s, err := p.LoadSession(context.Background(), 2023, "Bahrain Grand Prix", model.SessionRace)
	require.NoError(t, err)

	cmp, err := CompareDrivers(s, "VER", "PER")
	require.NoError(t, err)
	require.Len(t, cmp.Laps, 3)

	assert.Equal(t, 1, cmp.Laps[0].Lap)
	assert.InDelta(t, -1.0, cmp.Laps[0].Delta, 0.0001)
	assert.InDelta(t, 96.0, cmp.Laps[0].TimeA, 0.0001)
	assert.InDelta(t, 97.0, cmp.Laps[0].TimeB, 0.0001)
}

func TestCompareDriversAntisymmetric(t *testing.T) {
	p := newTestPipeline(t)
	s, err := p.LoadSession(context.Background(), 2023, "Bahrain Grand Prix", model.SessionRace)
	require.NoError(t, err)

	ab, err := CompareDrivers(s, "VER", "HAM")
	require.NoError(t, err)
	ba, err := CompareDrivers(s, "HAM", "VER")
	require.NoError(t, err)

	require.Equal(t, len(ab.Laps), len(ba.Laps))
	for i := range ab.Laps {
		assert.Equal(t, ab.Laps[i].Lap, ba.Laps[i].Lap)
		assert.InDelta(t, -ab.Laps[i].Delta, ba.Laps[i].Delta, 0.0001)
	}
}

func TestCompareDriversSkipsUntimedLaps(t *testing.T) {
	s := &model.SessionData{
		ID: model.SessionID{Year: 2023, Race: "Bahrain Grand Prix", Type: model.SessionRace},
		Laps: []model.LapRecord{
			{Driver: "VER", Lap: 1, Time: 96.0},
			{Driver: "VER", Lap: 2, Time: 0}, // red flag
			{Driver: "VER", Lap: 3, Time: 95.0},
			{Driver: "PER", Lap: 1, Time: 97.0},
			{Driver: "PER", Lap: 2, Time: 98.0},
			{Driver: "PER", Lap: 3, Time: 96.5},
		},
	}

	cmp, err := CompareDrivers(s, "VER", "PER")
	require.NoError(t, err)
	require.Len(t, cmp.Laps, 2)
	assert.Equal(t, 1, cmp.Laps[0].Lap)
	assert.Equal(t, 3, cmp.Laps[1].Lap)
}

func TestCompareDriversUnknownDriver(t *testing.T) {
	p := newTestPipeline(t)
	s, err := p.LoadSession(context.Background(), 2023, "Bahrain Grand Prix", model.SessionRace)
	require.NoError(t, err)

	_, err = CompareDrivers(s, "VER", "XXX")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = CompareDrivers(s, "XXX", "VER")
	assert.ErrorIs(t, err, ErrNotFound)
}
