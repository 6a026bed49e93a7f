package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	prague, err := time.LoadLocation("Europe/Prague")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		raw         string
		expected    time.Time
		expectError bool
	}{
		{name: "wall clock", raw: "2030-01-11 09:30", expected: time.Date(2030, 1, 11, 9, 30, 0, 0, prague)},
		{name: "T separator", raw: "2030-01-11T09:30", expected: time.Date(2030, 1, 11, 9, 30, 0, 0, prague)},
		{name: "surrounding spaces", raw: "  2030-01-11 09:30 ", expected: time.Date(2030, 1, 11, 9, 30, 0, 0, prague)},
		{name: "rfc3339", raw: "2030-01-11T08:30:00Z", expected: time.Date(2030, 1, 11, 8, 30, 0, 0, time.UTC)},
		{name: "bad month", raw: "2030-13-11 09:30", expectError: true},
		{name: "garbage", raw: "tomorrow", expectError: true},
		{name: "empty", raw: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Timestamp(tc.raw, prague)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestOptionalTimestamp(t *testing.T) {
	got, err := OptionalTimestamp("", time.UTC)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = OptionalTimestamp("2030-01-11 09:30", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hour())

	_, err = OptionalTimestamp("nope", time.UTC)
	assert.Error(t, err)
}

func TestDescending(t *testing.T) {
	for raw, expected := range map[string]bool{"": false, "asc": false, "ASC": false, "desc": true, " Desc ": true} {
		got, err := Descending(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, expected, got, raw)
	}
	_, err := Descending("sideways")
	assert.Error(t, err)
}

func TestTopNAndID(t *testing.T) {
	n, err := TopN("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = TopN("-1")
	assert.Error(t, err)
	_, err = TopN("")
	assert.Error(t, err)

	id, err := ID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ID("0")
	assert.Error(t, err)
	_, err = ID("abc")
	assert.Error(t, err)
}
