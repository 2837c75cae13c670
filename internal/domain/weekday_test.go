package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayNext(t *testing.T) {
	assert.Equal(t, Tuesday, Monday.Next())
	assert.Equal(t, Monday, Sunday.Next())
}

func TestWeekdayNextIsCyclicBijection(t *testing.T) {
	seen := make(map[Weekday]bool)
	for _, d := range Weekdays() {
		next := d.Next()
		require.True(t, next.Valid())
		require.False(t, seen[next], "next(%s) collides", d)
		seen[next] = true

		cur := d
		for i := 0; i < 7; i++ {
			cur = cur.Next()
		}
		require.Equal(t, d, cur)
	}
	assert.Len(t, seen, 7)
}

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday(" Friday")
	require.NoError(t, err)
	assert.Equal(t, Friday, d)

	_, err = ParseWeekday("funday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeekdayJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Day Weekday `json:"day"`
	}{Day: Sunday})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"sunday"}`, string(b))

	var out struct {
		Day Weekday `json:"day"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"wednesday"}`), &out))
	assert.Equal(t, Wednesday, out.Day)
}

func TestParseCriterion(t *testing.T) {
	for _, c := range Criteria() {
		got, err := ParseCriterion(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCriterion("scenic")
	assert.ErrorIs(t, err, ErrUnknownCriterion)
}
