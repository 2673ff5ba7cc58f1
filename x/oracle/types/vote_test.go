package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/ember-oracle/ember/x/oracle/types"
)

func TestComputeCommitHashDeterministic(t *testing.T) {
	a := types.ComputeCommitHash(100, 42, "voter00")
	b := types.ComputeCommitHash(100, 42, "voter00")
	require.Equal(t, a, b)
	require.Len(t, a.String(), 64)
}

func TestComputeCommitHashBindsAllInputs(t *testing.T) {
	base := types.ComputeCommitHash(100, 42, "voter00")

	require.NotEqual(t, base, types.ComputeCommitHash(101, 42, "voter00"))
	require.NotEqual(t, base, types.ComputeCommitHash(100, 43, "voter00"))
	require.NotEqual(t, base, types.ComputeCommitHash(100, 42, "voter01"))
}

func validResult() types.EpochResult {
	return types.EpochResult{
		EpochID:                 7,
		LowPrice:                5,
		MedianPrice:             6,
		HighPrice:               11,
		LowWeightSum:            math.NewInt(20),
		RewardedWeightSum:       math.NewInt(70),
		HighWeightSum:           math.NewInt(23),
		TotalWeight:             math.NewInt(113),
		NativeLowWeightSum:      math.NewInt(20),
		NativeRewardedWeightSum: math.NewInt(70),
		NativeHighWeightSum:     math.NewInt(23),
		Medians: types.MediansInfo{
			TruncatedFirstQuartileIndex: 1,
			FirstQuartileIndex:          1,
			MedianIndex:                 2,
			LastQuartileIndex:           7,
			TruncatedLastQuartileIndex:  7,
		},
	}
}

func TestEpochResultValidate(t *testing.T) {
	require.NoError(t, validResult().Validate())

	r := validResult()
	r.MedianPrice = 4
	require.ErrorIs(t, r.Validate(), types.ErrStateCorruption)

	r = validResult()
	r.HighPrice = 5
	require.ErrorIs(t, r.Validate(), types.ErrStateCorruption)

	r = validResult()
	r.TotalWeight = math.NewInt(114)
	require.ErrorIs(t, r.Validate(), types.ErrStateCorruption)

	r = validResult()
	r.Medians.MedianIndex = 0
	require.ErrorIs(t, r.Validate(), types.ErrStateCorruption)
}

func TestSnapshotVotePowerSource(t *testing.T) {
	source := types.NewSnapshotVotePowerSource([]types.AccountPower{
		{Account: "voter00", Native: math.NewInt(70), Asset: math.NewInt(5)},
		{Account: "voter01", Native: math.NewInt(30), Asset: math.NewInt(15)},
	}, math.NewInt(1_000_000_000))

	native, asset, err := source.VotePowerOf("voter00", 0)
	require.NoError(t, err)
	require.Equal(t, int64(70), native.Int64())
	require.Equal(t, int64(5), asset.Int64())

	// Unknown accounts carry no power.
	native, asset, err = source.VotePowerOf("stranger", 0)
	require.NoError(t, err)
	require.True(t, native.IsZero())
	require.True(t, asset.IsZero())

	totalNative, totalAsset, usd, err := source.TotalVotePowerAt(0)
	require.NoError(t, err)
	require.Equal(t, int64(100), totalNative.Int64())
	require.Equal(t, int64(20), totalAsset.Int64())
	require.Equal(t, int64(1_000_000_000), usd.Int64())
}
