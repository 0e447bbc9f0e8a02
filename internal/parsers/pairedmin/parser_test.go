package pairedmin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlab-tools/reagentcheck/internal/core/domain"
)

const au5800Header = "Pos.   Test Name   R1/R2 Shots   Onboard Remaining   RB Stability Remaining   Cal Stability Remaining   Expiration   Lot No.   BTL No   Seq.   Comment"

func au5800(t *testing.T) domain.AnalyzerProfile {
	t.Helper()
	p, err := domain.ProfileFor(domain.ProfileBeckmanAU5800)
	require.NoError(t, err)
	return p
}

func parse(t *testing.T, rows ...string) *domain.ExtractionResult {
	t.Helper()
	text := au5800Header
	for _, row := range rows {
		text += "\n" + row
	}
	result, err := New(au5800(t)).Parse(context.Background(), text)
	require.NoError(t, err)
	return result
}

func TestParsePairsSplitPacks(t *testing.T) {
	result := parse(t,
		"1   BUN   30   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"2   BUN   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
	)

	require.Equal(t, []string{"bun"}, result.Records.Names())
	bun, _ := result.Records.Get("bun")
	require.NotNil(t, bun.Quantity)
	// Two packs: the usable quantity is the lesser of the pair.
	assert.Equal(t, 30, *bun.Quantity)
	require.NotNil(t, bun.Expiry)
	assert.Equal(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), *bun.Expiry)
	require.NotNil(t, bun.Secondary)
	assert.Equal(t, 12, *bun.Secondary)
}

func TestParseUnpairedTrailingRow(t *testing.T) {
	result := parse(t,
		"1   BUN   30   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"2   BUN   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
		"3   BUN   10   8 days   45 days   30 days   11/01/2025   1124   3   1   -",
	)

	bun, _ := result.Records.Get("bun")
	require.NotNil(t, bun.Quantity)
	// min(45,30) + unpaired 10 = 40.
	assert.Equal(t, 40, *bun.Quantity)
}

func TestParseOrderIndependentAggregation(t *testing.T) {
	rows := []string{
		"1   BUN   30   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"2   BUN   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
		"3   BUN   10   8 days   45 days   30 days   11/01/2025   1124   3   1   -",
	}
	shuffled := []string{rows[2], rows[0], rows[1]}

	a, _ := parse(t, rows...).Records.Get("bun")
	b, _ := parse(t, shuffled...).Records.Get("bun")

	require.NotNil(t, a.Quantity)
	require.NotNil(t, b.Quantity)
	assert.Equal(t, *a.Quantity, *b.Quantity)
	require.NotNil(t, a.Expiry)
	require.NotNil(t, b.Expiry)
	assert.True(t, a.Expiry.Equal(*b.Expiry))
}

func TestParseChannelSuffixFolds(t *testing.T) {
	result := parse(t,
		"1   FT3-3   30   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"2   FT3-4   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
	)

	// Channel instances collapse to the base test name and pair up.
	require.Equal(t, []string{"ft3"}, result.Records.Names())
	ft3, _ := result.Records.Get("ft3")
	require.NotNil(t, ft3.Quantity)
	assert.Equal(t, 30, *ft3.Quantity)
}

func TestParseSkipsRowsWithoutQuantity(t *testing.T) {
	result := parse(t,
		"1   BUN   n/a   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"2   ALB   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
	)

	assert.Equal(t, []string{"alb"}, result.Records.Names())
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, domain.ReasonNoQuantity, result.Skipped[0].Reason)
}

func TestParseHeaderNotFound(t *testing.T) {
	result, err := New(au5800(t)).Parse(context.Background(), "reagent overview\n1   BUN   30")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Records.Len())
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, domain.ReasonHeaderNotFound, result.Skipped[0].Reason)
}

func TestParseStopsAtTerminator(t *testing.T) {
	result := parse(t,
		"1   BUN   30   12 days   45 days   30 days   09/30/2025   1122   1   1   -",
		"Summary   2 reagents onboard",
		"2   ALB   45   10 days   45 days   30 days   10/15/2025   1123   2   1   -",
	)

	assert.Equal(t, []string{"bun"}, result.Records.Names())
}

func TestParseMissingExpiryColumnIsOptional(t *testing.T) {
	// Header truncated after the required leading columns: expiry and
	// lot stay unresolved, rows still parse.
	text := "Pos.   Test Name   R1/R2 Shots\n1   BUN   30\n2   BUN   45"

	result, err := New(au5800(t)).Parse(context.Background(), text)
	require.NoError(t, err)

	bun, ok := result.Records.Get("bun")
	require.True(t, ok)
	require.NotNil(t, bun.Quantity)
	assert.Equal(t, 30, *bun.Quantity)
	assert.Nil(t, bun.Expiry)
}
