package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.June, Day: 1}, d)
	assert.Equal(t, "2024-06-01", d.String())

	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("06/01/2024")
	assert.Error(t, err)
}

func TestNewDate_Normalizes(t *testing.T) {
	assert.Equal(t, "2024-02-01", NewDate(2024, time.January, 32).String())
	assert.Equal(t, "2023-12-31", NewDate(2024, time.January, 1).AddDays(-1).String())
	assert.Equal(t, "2024-03-01", NewDate(2024, time.February, 28).AddDays(2).String())
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.June, 1)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

func TestToday_UsesLocalCalendarDate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, NewDate(2024, time.June, 1), Today(now))
}

func TestDate_ValueAndScan(t *testing.T) {
	d := NewDate(2024, time.June, 1)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", v)

	zero, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, zero)

	var scanned Date
	require.NoError(t, scanned.Scan("2024-06-01"))
	assert.Equal(t, d, scanned)

	require.NoError(t, scanned.Scan([]byte("2024-01-15 00:00:00")))
	assert.Equal(t, NewDate(2024, time.January, 15), scanned)

	require.NoError(t, scanned.Scan(time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2024, time.March, 3), scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	out, err := json.Marshal(payload{Date: NewDate(2024, time.June, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(out))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-31"}`), &p))
	assert.Equal(t, NewDate(2024, time.December, 31), p.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &p))
	assert.True(t, p.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"tomorrow"}`), &p))
}
