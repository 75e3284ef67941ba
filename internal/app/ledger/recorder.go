package ledger

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	"storefront/internal/repository/ledger_repo"
)

// Recorder appends verified payments to the external ledger. The ledger
// offers no transactional read-modify-write, so the next serial number is
// derived from the current row count on every append. Appends from this
// process are serialized through a mutex, which closes the duplicate-serial
// race for a single-process deployment; concurrent processes sharing one
// ledger can still collide.
type Recorder struct {
	repo       ledger_repo.LedgerRepository
	logger     *zap.Logger
	timeout    time.Duration
	maxRetries uint64

	mu sync.Mutex

	now func() time.Time
}

func NewRecorder(repo ledger_repo.LedgerRepository, timeout time.Duration, maxRetries uint64, l *zap.Logger) *Recorder {
	return &Recorder{
		repo:       repo,
		logger:     l,
		timeout:    timeout,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// Append records one payment row and reports whether the write succeeded.
// It never returns an error: by the time it runs the buyer's payment is
// already verified, and a bookkeeping failure must not fail that outcome.
// Transient I/O failures are retried with exponential backoff; the serial
// is re-derived on every attempt so a retry never reuses a stale count.
func (r *Recorder) Append(ctx context.Context, entry Entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var serial int
	backoff := retry.WithMaxRetries(r.maxRetries, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		cells, err := r.repo.ReadSerialColumn(ctx)
		if err != nil {
			return retry.RetryableError(err)
		}
		serial = nextSerial(cells)

		date, clock := domain.FormatLedgerTimestamp(r.now())
		row := []interface{}{
			serial,
			entry.Name,
			entry.Mobile,
			entry.Email,
			entry.AmountMajor,
			entry.PaymentID,
			domain.LedgerStatusSuccess,
			date,
			clock,
			entry.Method,
			entry.Product,
		}
		if err := r.repo.AppendRow(ctx, row); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to append payment to ledger",
			zap.String("payment_id", entry.PaymentID),
			zap.Error(err))
		metrics.LedgerAppendFailures.Inc()
		return false
	}

	r.logger.Info("Payment recorded in ledger",
		zap.Int("serial", serial),
		zap.String("payment_id", entry.PaymentID))
	return true
}

// nextSerial derives the 1-based serial for the next row from the raw first
// column. The first cell is a header when it is the literal label "no" or
// anything non-numeric.
func nextSerial(cells []string) int {
	if len(cells) == 0 {
		return 1
	}

	first := strings.ToLower(strings.TrimSpace(cells[0]))
	_, err := strconv.ParseFloat(first, 64)
	hasHeader := first == "no" || err != nil

	dataRows := len(cells)
	if hasHeader {
		dataRows--
	}
	return dataRows + 1
}
