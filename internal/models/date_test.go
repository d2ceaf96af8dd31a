package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOfKeepsLocalCalendarDay(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)

	// 01:30 UTC on the 20th is still the 19th in São Paulo.
	instant := time.Date(2026, time.October, 20, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-20", FormatDate(instant))
	assert.Equal(t, "2026-10-19", FormatDate(instant.In(sp)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("28/02/2026")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, time.February, 27, 22, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, DaysBetween(from, to))
	assert.Equal(t, -3, DaysBetween(to, from))
	assert.Equal(t, 0, DaysBetween(from, from.Add(time.Hour)))
	assert.Equal(t, 365, DaysBetween(today, today.AddDate(1, 0, 0)))
}

func TestDaysBetweenLongSpans(t *testing.T) {
	old := time.Date(1700, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 119360, DaysBetween(old, today))
	assert.Equal(t, -119360, DaysBetween(today, old))

	from := time.Date(2100, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2400, time.March, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 109573, DaysBetween(from, to))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2026-11-02", FormatDate(AddDays(today, 14)))
	assert.Equal(t, "2026-10-19", FormatDate(AddDays(today.Add(20*time.Hour), 0)))
}
