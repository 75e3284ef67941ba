package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 100},
		{"499", 49900},
		{"  250 ", 25000},
		{"100000", 10000000},
	}
	for _, tt := range tests {
		got, err := NormalizeAmount(tt.in)
		require.NoError(t, err, "amount %q", tt.in)
		assert.Equal(t, tt.want, got, "amount %q", tt.in)
	}
}

func TestNormalizeAmount_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"0",
		"-1",
		"-499",
		"abc",
		"499.50",
		"0.99",
		"NaN",
		"Inf",
		"1e309",
	}
	for _, in := range invalid {
		_, err := NormalizeAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", in)
	}
}

func TestMinorToMajor(t *testing.T) {
	assert.Equal(t, 499.0, MinorToMajor("49900"))
	assert.Equal(t, 0.5, MinorToMajor("50"))

	// Already-confirmed payments must not be rejected over a formatting
	// problem, so bad input defaults to 0.
	assert.Equal(t, 0.0, MinorToMajor(""))
	assert.Equal(t, 0.0, MinorToMajor("not-a-number"))
}

func TestNumericString_UnmarshalJSON(t *testing.T) {
	var s struct {
		Amount NumericString `json:"amount"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"amount": 499}`), &s))
	assert.Equal(t, NumericString("499"), s.Amount)

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "499"}`), &s))
	assert.Equal(t, NumericString("499"), s.Amount)
}

func TestFormatLedgerTimestamp(t *testing.T) {
	// 2024-03-01 12:30:00 UTC is 18:00:00 IST the same day.
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	date, clock := FormatLedgerTimestamp(at)
	assert.Equal(t, "01/03/2024", date)
	assert.Equal(t, "06:00:00 pm", clock)
}
