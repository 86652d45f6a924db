package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountToBigInt(t *testing.T) {
	cases := []struct {
		amount    string
		precision int
		want      string
	}{
		{"1.234", 3, "1234"},
		{"1", 3, "1000"},
		{"0.5", 8, "50000000"},
		{".5", 3, "500"},
		{"1.23456", 3, "1234"}, // over-precise input is truncated
		{"0", 3, "0"},
		{"-2.5", 3, "-2500"},
	}

	for _, c := range cases {
		got, err := AmountToBigInt(c.amount, c.precision)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "amount=%s precision=%d", c.amount, c.precision)
	}

	_, err := AmountToBigInt("", 3)
	assert.ErrorIs(t, err, ErrBadAmount)
	_, err = AmountToBigInt("abc", 3)
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestBigIntToAmount(t *testing.T) {
	cases := []struct {
		scaled    string
		precision int
		want      string
	}{
		{"1234", 3, "1.234"},
		{"1000", 3, "1"},
		{"1200", 3, "1.2"},
		{"50000000", 8, "0.5"},
		{"0", 3, "0"},
		{"-2500", 3, "-2.5"},
	}

	for _, c := range cases {
		got, err := BigIntToAmount(c.scaled, c.precision)
		assert.NoError(t, err)
		assert.Equal(t, c.want, got, "scaled=%s precision=%d", c.scaled, c.precision)
	}

	_, err := BigIntToAmount("xyz", 3)
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestRoundTrip(t *testing.T) {
	scaled, err := AmountToBigInt("12.00000001", 8)
	assert.NoError(t, err)
	back, err := BigIntToAmount(scaled, 8)
	assert.NoError(t, err)
	assert.Equal(t, "12.00000001", back)
}

func TestNativeToken(t *testing.T) {
	assert.True(t, IsNativeToken("MEER"))
	assert.True(t, IsNativeToken("ECH"))
	assert.False(t, IsNativeToken("STEEM"))
}

func TestParseEventTime(t *testing.T) {
	ms, ok := ParseEventTime("2024-05-01T12:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, int64(1714564800000), ms)

	_, ok = ParseEventTime("")
	assert.False(t, ok)
	_, ok = ParseEventTime("not-a-time")
	assert.False(t, ok)
}

func TestNewTrackingId(t *testing.T) {
	a := NewTrackingId()
	b := NewTrackingId()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
