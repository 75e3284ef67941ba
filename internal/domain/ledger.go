package domain

import "time"

// LedgerStatusSuccess is the status column value for every recorded row:
// only verified payments reach the ledger.
const LedgerStatusSuccess = "Success"

// istZone is the ledger's fixed display timezone. A fixed offset avoids a
// dependency on the host tzdata.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// FormatLedgerTimestamp renders t in the ledger's locale convention:
// DD/MM/YYYY and a 12-hour clock, both in IST.
func FormatLedgerTimestamp(t time.Time) (date string, clock string) {
	ist := t.In(istZone)
	return ist.Format("02/01/2006"), ist.Format("03:04:05 pm")
}
