package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 3 from spec.md §8: largest=10, delay=0, 1 block,
// first_ack=2, gap=1, second_ack=0 → ranges [[5,5],[8,10]].
func TestReconstructAckRangesSingleBlock(t *testing.T) {
	ranges, perr := reconstructAckRanges(10, 2, []ackGapPair{{Gap: 1, Ack: 0}})
	require.Nil(t, perr)
	assert.Equal(t, []AckRange{{Low: 5, High: 5}, {Low: 8, High: 10}}, ranges)
}

func TestReconstructAckRangesNoBlocks(t *testing.T) {
	ranges, perr := reconstructAckRanges(100, 0, nil)
	require.Nil(t, perr)
	assert.Equal(t, []AckRange{{Low: 100, High: 100}}, ranges)
}

func TestReconstructAckRangesAscendingAndDisjoint(t *testing.T) {
	ranges, perr := reconstructAckRanges(50, 5, []ackGapPair{{Gap: 0, Ack: 2}, {Gap: 1, Ack: 1}})
	require.Nil(t, perr)
	for i := 1; i < len(ranges); i++ {
		assert.Less(t, ranges[i-1].High, ranges[i].Low, "ranges must be strictly ascending and disjoint")
	}
	for _, r := range ranges {
		assert.LessOrEqual(t, r.Low, r.High)
		assert.LessOrEqual(t, r.High, uint64(50))
	}
}

func TestReconstructAckRangesNegativeFirstRangeIsFrameFormat(t *testing.T) {
	_, perr := reconstructAckRanges(5, 10, nil) // ack range exceeds largest_acked
	require.NotNil(t, perr)
	assert.Equal(t, FrameFormat, perr.Kind)
}

func TestReconstructAckRangesNegativeGapIsFrameFormat(t *testing.T) {
	// smallest of the first range is 0; any further gap underflows.
	_, perr := reconstructAckRanges(10, 10, []ackGapPair{{Gap: 0, Ack: 0}})
	require.NotNil(t, perr)
	assert.Equal(t, FrameFormat, perr.Kind)
}
