package keeper

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/ember-oracle/ember/x/oracle/types"
)

// medianOutcome is the full output of the weighted median walk over one
// epoch's votes.
type medianOutcome struct {
	medians types.MediansInfo

	lowPrice    uint64
	medianPrice uint64
	highPrice   uint64

	lowWeightSum      math.Int
	rewardedWeightSum math.Int
	highWeightSum     math.Int
	totalWeight       math.Int

	nativeLowWeightSum      math.Int
	nativeRewardedWeightSum math.Int
	nativeHighWeightSum     math.Int

	rewardedVotes []types.RewardedVote
}

// computeWeightedMedian runs the truncated weighted median over the votes.
// Votes and weights are index-aligned and must arrive in submitter order so
// the stable price sort breaks ties deterministically.
//
// The walk finds the median position at cumulative weight ceil(total/2),
// then the first quartile scanning down from the top of the list and the
// last quartile scanning up from the median, both to cumulative weight
// total - floor(total/4). Each quartile boundary is then extended across
// votes sharing the boundary price, so equal prices are never split between
// the rewarded band and a tail.
func computeWeightedMedian(votes []types.Vote, weights []math.Int) (medianOutcome, error) {
	n := len(votes)
	if n == 0 {
		return medianOutcome{}, errorsmod.Wrap(types.ErrInsufficientVotes, "no votes to aggregate")
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return votes[order[a]].Price < votes[order[b]].Price
	})

	totalWeight := math.ZeroInt()
	for _, w := range weights {
		totalWeight = totalWeight.Add(w)
	}
	if totalWeight.IsZero() {
		return medianOutcome{}, errorsmod.Wrap(types.ErrInsufficientWeight, "total blended weight is zero")
	}

	weightAt := func(pos int) math.Int { return weights[order[pos]] }
	priceAt := func(pos int) uint64 { return votes[order[pos]].Price }

	two := math.NewInt(2)
	four := math.NewInt(4)
	medianWeight := totalWeight.Add(math.OneInt()).Quo(two)
	quartileWeight := totalWeight.Sub(totalWeight.Quo(four))

	medianIndex := 0
	medianSum := math.ZeroInt()
	for medianIndex < n {
		medianSum = medianSum.Add(weightAt(medianIndex))
		if medianSum.GTE(medianWeight) {
			break
		}
		medianIndex++
	}

	firstQuartileIndex := n
	firstQuartileSum := math.ZeroInt()
	for firstQuartileSum.LT(quartileWeight) && firstQuartileIndex > 0 {
		firstQuartileIndex--
		firstQuartileSum = firstQuartileSum.Add(weightAt(firstQuartileIndex))
	}

	lastQuartileIndex := medianIndex
	lastQuartileSum := medianSum
	for lastQuartileSum.LT(quartileWeight) && lastQuartileIndex < n-1 {
		lastQuartileIndex++
		lastQuartileSum = lastQuartileSum.Add(weightAt(lastQuartileIndex))
	}

	truncatedFirstQuartileIndex := firstQuartileIndex
	for truncatedFirstQuartileIndex > 0 &&
		priceAt(truncatedFirstQuartileIndex-1) == priceAt(firstQuartileIndex) {
		truncatedFirstQuartileIndex--
	}
	truncatedLastQuartileIndex := lastQuartileIndex
	for truncatedLastQuartileIndex < n-1 &&
		priceAt(truncatedLastQuartileIndex+1) == priceAt(lastQuartileIndex) {
		truncatedLastQuartileIndex++
	}

	lowWeightSum := math.ZeroInt()
	nativeLowWeightSum := math.ZeroInt()
	for i := 0; i < truncatedFirstQuartileIndex; i++ {
		lowWeightSum = lowWeightSum.Add(weightAt(i))
		nativeLowWeightSum = nativeLowWeightSum.Add(votes[order[i]].VotePowerNative)
	}
	highWeightSum := math.ZeroInt()
	nativeHighWeightSum := math.ZeroInt()
	for i := truncatedLastQuartileIndex + 1; i < n; i++ {
		highWeightSum = highWeightSum.Add(weightAt(i))
		nativeHighWeightSum = nativeHighWeightSum.Add(votes[order[i]].VotePowerNative)
	}
	nativeRewardedWeightSum := math.ZeroInt()
	for i := truncatedFirstQuartileIndex; i <= truncatedLastQuartileIndex; i++ {
		nativeRewardedWeightSum = nativeRewardedWeightSum.Add(votes[order[i]].VotePowerNative)
	}

	medianPrice := priceAt(medianIndex)
	// With an even total weight split exactly in half at the median
	// position, the median lies between two votes and their prices are
	// averaged, rounding down.
	if totalWeight.Mod(two).IsZero() && medianSum.Equal(totalWeight.Quo(two)) && medianIndex < n-1 {
		medianPrice = averagePrice(medianPrice, priceAt(medianIndex+1))
	}

	rewarded := make([]types.RewardedVote, 0, truncatedLastQuartileIndex-truncatedFirstQuartileIndex+1)
	for i := truncatedFirstQuartileIndex; i <= truncatedLastQuartileIndex; i++ {
		v := votes[order[i]]
		if v.VotePowerNative.IsPositive() {
			rewarded = append(rewarded, types.RewardedVote{
				Address:      v.Submitter,
				NativeWeight: v.VotePowerNative,
			})
		}
	}
	sort.Slice(rewarded, func(a, b int) bool {
		return rewarded[a].Address < rewarded[b].Address
	})

	return medianOutcome{
		medians: types.MediansInfo{
			TruncatedFirstQuartileIndex: truncatedFirstQuartileIndex,
			FirstQuartileIndex:          firstQuartileIndex,
			MedianIndex:                 medianIndex,
			LastQuartileIndex:           lastQuartileIndex,
			TruncatedLastQuartileIndex:  truncatedLastQuartileIndex,
		},
		lowPrice:                priceAt(truncatedFirstQuartileIndex),
		medianPrice:             medianPrice,
		highPrice:               priceAt(truncatedLastQuartileIndex),
		lowWeightSum:            lowWeightSum,
		rewardedWeightSum:       totalWeight.Sub(lowWeightSum).Sub(highWeightSum),
		highWeightSum:           highWeightSum,
		totalWeight:             totalWeight,
		nativeLowWeightSum:      nativeLowWeightSum,
		nativeRewardedWeightSum: nativeRewardedWeightSum,
		nativeHighWeightSum:     nativeHighWeightSum,
		rewardedVotes:           rewarded,
	}, nil
}

// averagePrice returns floor((a+b)/2) without uint64 overflow.
func averagePrice(a, b uint64) uint64 {
	return a/2 + b/2 + (a%2+b%2)/2
}
