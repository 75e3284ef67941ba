package ledger_repo

import "context"

// LedgerRepository is the narrow contract against the external append-only
// ledger. The store offers no transactional read-modify-write, so serial
// derivation from ReadSerialColumn and the subsequent AppendRow are two
// independent calls by design.
type LedgerRepository interface {
	// ReadSerialColumn returns the raw first-column cells of the ledger
	// tab, header included if one exists, in row order.
	ReadSerialColumn(ctx context.Context) ([]string, error)
	// AppendRow appends one row of cells after the last non-empty row.
	AppendRow(ctx context.Context, row []interface{}) error
}
