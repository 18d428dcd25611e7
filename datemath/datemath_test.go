package datemath

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func TestEval_Now(t *testing.T) {
	t.Parallel()
	got, ok := Eval("now", base, Lower)
	require.True(t, ok)
	assert.True(t, got.Equal(base))
}

func TestEval_NowMinusDays(t *testing.T) {
	t.Parallel()
	got, ok := Eval("now-7d", base, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-06-08T00:00:00.000+00:00", Format(got))
}

func TestEval_NowRoundDay(t *testing.T) {
	t.Parallel()
	noon := base.Add(12 * time.Hour)
	got, ok := Eval("now/d", noon, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-06-15T00:00:00.000+00:00", Format(got))
}

func TestEval_NowRoundDayUpperBound(t *testing.T) {
	t.Parallel()
	got, ok := Eval("now/d", base, Upper)
	require.True(t, ok)
	assert.Equal(t, "2024-06-15T23:59:59.999+00:00", Format(got))
}

func TestEval_NowMinusMonthRoundMonth(t *testing.T) {
	t.Parallel()
	got, ok := Eval("now-1M/M", base, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-05-01T00:00:00.000+00:00", Format(got))
}

func TestEval_DateLiteralAnchorPlusMonthRoundDay(t *testing.T) {
	t.Parallel()
	got, ok := Eval("2024-01-01||+1M/d", base, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01T00:00:00.000+00:00", Format(got))
}

func TestEval_DateLiteralAnchorMinusDays(t *testing.T) {
	t.Parallel()
	got, ok := Eval("2024-06-15||-7d", base, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-06-08T00:00:00.000+00:00", Format(got))
}

func TestEval_InvalidSyntaxFails(t *testing.T) {
	t.Parallel()
	_, ok := Eval("not-date-math", base, Lower)
	assert.False(t, ok)
}

func TestEval_WeekRoundsToMonday(t *testing.T) {
	t.Parallel()
	// 2024-06-15 is a Saturday.
	got, ok := Eval("now/w", base, Lower)
	require.True(t, ok)
	assert.Equal(t, "2024-06-10T00:00:00.000+00:00", Format(got))
}

func TestIsCandidate(t *testing.T) {
	t.Parallel()
	assert.True(t, IsCandidate("now"))
	assert.True(t, IsCandidate("now-1d"))
	assert.True(t, IsCandidate("2024-01-01||+1d"))
	assert.True(t, IsCandidate("2024-1d"))
	assert.False(t, IsCandidate("hello"))
	assert.False(t, IsCandidate("active"))
}
