package ledger_repo

import (
	"context"
	"fmt"
)

type unavailable struct {
	reason string
}

// NewUnavailable returns a LedgerRepository whose every call fails with the
// given reason. Used when ledger credentials are not configured: the service
// still boots and verifies payments, and every append degrades to the
// "verified but not recorded" outcome.
func NewUnavailable(reason string) LedgerRepository {
	return &unavailable{reason: reason}
}

func (u *unavailable) ReadSerialColumn(ctx context.Context) ([]string, error) {
	return nil, fmt.Errorf("ledger unavailable: %s", u.reason)
}

func (u *unavailable) AppendRow(ctx context.Context, row []interface{}) error {
	return fmt.Errorf("ledger unavailable: %s", u.reason)
}
