package ledger

// Entry carries the payment fields recorded in the ledger. Serial, status
// and the timestamp columns are filled in by the Recorder at append time.
type Entry struct {
	Name        string
	Mobile      string
	Email       string
	AmountMajor float64
	PaymentID   string
	Method      string
	Product     string
}
