package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ember-oracle/ember/x/oracle/types"
)

func TestNewEpochTimingValidation(t *testing.T) {
	tests := []struct {
		name   string
		submit int64
		reveal int64
		valid  bool
	}{
		{name: "valid", submit: 180, reveal: 90, valid: true},
		{name: "zero submit period", submit: 0, reveal: 90, valid: false},
		{name: "negative submit period", submit: -1, reveal: 90, valid: false},
		{name: "zero reveal period", submit: 180, reveal: 0, valid: false},
		{name: "negative reveal period", submit: 180, reveal: -5, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.NewEpochTiming(1000, tt.submit, tt.reveal)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, types.ErrInvalidTiming)
			}
		})
	}
}

func TestEpochIDMapping(t *testing.T) {
	timing, err := types.NewEpochTiming(1000, 100, 50)
	require.NoError(t, err)

	tests := []struct {
		now      int64
		expected uint64
	}{
		{now: 0, expected: 0},
		{now: 1000, expected: 0},
		{now: 1001, expected: 0},
		{now: 1099, expected: 0},
		{now: 1100, expected: 1},
		{now: 1999, expected: 9},
		{now: 2000, expected: 10},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, timing.EpochID(tt.now), "now=%d", tt.now)
	}
}

func TestEpochWindows(t *testing.T) {
	timing, err := types.NewEpochTiming(1000, 100, 50)
	require.NoError(t, err)

	require.Equal(t, int64(1300), timing.SubmitWindowStart(3))
	require.Equal(t, int64(1400), timing.SubmitWindowEnd(3))
	require.Equal(t, int64(1450), timing.RevealWindowEnd(3))

	// Submit window is closed-open.
	require.False(t, timing.IsSubmitOpen(3, 1299))
	require.True(t, timing.IsSubmitOpen(3, 1300))
	require.True(t, timing.IsSubmitOpen(3, 1399))
	require.False(t, timing.IsSubmitOpen(3, 1400))

	// Reveal window starts the instant submit closes.
	require.False(t, timing.IsRevealOpen(3, 1399))
	require.True(t, timing.IsRevealOpen(3, 1400))
	require.True(t, timing.IsRevealOpen(3, 1449))
	require.False(t, timing.IsRevealOpen(3, 1450))
}

func TestAdjacentEpochWindowsDoNotOverlap(t *testing.T) {
	timing, err := types.NewEpochTiming(0, 100, 50)
	require.NoError(t, err)

	// Submit window of epoch e+1 opens exactly as epoch e's closes, while
	// epoch e is still in its reveal phase.
	require.Equal(t, timing.SubmitWindowEnd(4), timing.SubmitWindowStart(5))
	require.True(t, timing.IsSubmitOpen(5, 500))
	require.True(t, timing.IsRevealOpen(4, 500))
	require.False(t, timing.IsSubmitOpen(4, 500))
}
