package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// NumericString holds a JSON scalar as its text form, accepting both bare
// and quoted numbers. Checkout forms submit either shape; validation is the
// normalizer's job, not the decoder's.
type NumericString string

func (n *NumericString) UnmarshalJSON(b []byte) error {
	*n = NumericString(strings.Trim(string(b), `"`))
	return nil
}

// NormalizeAmount converts a user-supplied major-unit amount into the
// gateway's minor-unit integer representation (paise for INR). The amount
// must be a strictly positive whole number of major units.
func NormalizeAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAmount
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidAmount
	}
	if value != math.Trunc(value) {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(value * 100)), nil
}

// MinorToMajor converts a gateway minor-unit amount back to major units for
// the ledger. Unparseable input yields 0: by the time verification reaches
// the ledger the payment is already confirmed, so a formatting problem must
// not reject it.
func MinorToMajor(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	minor, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return minor / 100
}
