package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/ember-oracle/ember/x/oracle/types"
)

func TestDefaultParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Params)
	}{
		{
			name:   "zero min vote count",
			mutate: func(p *types.Params) { p.MinVoteCount = 0 },
		},
		{
			name:   "nil low threshold",
			mutate: func(p *types.Params) { p.LowAssetUSDThreshold = math.Int{} },
		},
		{
			name:   "nil high threshold",
			mutate: func(p *types.Params) { p.HighAssetUSDThreshold = math.Int{} },
		},
		{
			name:   "negative low threshold",
			mutate: func(p *types.Params) { p.LowAssetUSDThreshold = math.NewInt(-1) },
		},
		{
			name: "high threshold equal to low",
			mutate: func(p *types.Params) {
				p.HighAssetUSDThreshold = p.LowAssetUSDThreshold
			},
		},
		{
			name: "high threshold below low",
			mutate: func(p *types.Params) {
				p.HighAssetUSDThreshold = p.LowAssetUSDThreshold.SubRaw(1)
			},
		},
		{
			name:   "zero turnout threshold",
			mutate: func(p *types.Params) { p.HighAssetTurnoutThresholdBips = 0 },
		},
		{
			name:   "turnout threshold above full",
			mutate: func(p *types.Params) { p.HighAssetTurnoutThresholdBips = types.BipsTotal + 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := types.DefaultParams()
			tt.mutate(&p)
			require.ErrorIs(t, p.Validate(), types.ErrInvalidThreshold)
		})
	}
}
