// =============================================================================
// Backer CSV to Shopify Orders - Upload Driver
// =============================================================================
//
// Drives the sequential upload of pending orders. Responsibilities:
//   - Consult the import ledger and project the pending order list
//   - Invoke the uploader exactly once per pending order, never concurrently
//   - Isolate per-order failures so one rejected order never stops the run
//   - Pace between attempts regardless of outcome, to respect the API's
//     rate limits
//
// Pacing and error isolation are deliberately separate concerns: the Pacer
// decides when the next call may start, the loop decides what a failure
// means. This run has no retries; a failed order stays failed.
//
// =============================================================================

package importer

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/backercamp/csv-to-shopify-orders/internal/ledger"
	"github.com/backercamp/csv-to-shopify-orders/internal/order"
	"github.com/backercamp/csv-to-shopify-orders/internal/shopify"
)

// Uploader performs one order-creation call. Satisfied by *shopify.Client.
type Uploader interface {
	CreateOrder(ctx context.Context, req shopify.CreateOrderRequest) (*shopify.CreateOrderResult, error)
}

// Pacer gates the start of the next upload attempt.
type Pacer interface {
	// Pace blocks until the next call may start or the context ends.
	Pace(ctx context.Context)
}

// FixedDelayPacer waits a constant interval after every attempt.
type FixedDelayPacer struct {
	Delay time.Duration
}

// DefaultDelay between consecutive upload attempts.
const DefaultDelay = 1000 * time.Millisecond

func (p *FixedDelayPacer) Pace(ctx context.Context) {
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Result is the outcome of one order's upload attempt.
type Result struct {
	Key     string
	Email   string
	OrderID int64
	Success bool
	Err     error
}

// Stats summarizes one import run.
type Stats struct {
	Orders   int
	Pending  int
	Skipped  int
	Uploaded int
	Failed   int
	Elapsed  time.Duration
}

// Importer runs the upload phase for one export.
type Importer struct {
	uploader Uploader
	ledger   *ledger.Ledger
	pacer    Pacer
	logger   *zap.Logger
	dryRun   bool
}

// New builds an importer. A nil ledger disables import filtering and
// marking; a nil pacer falls back to the default fixed delay.
func New(uploader Uploader, led *ledger.Ledger, pacer Pacer, logger *zap.Logger, dryRun bool) *Importer {
	if pacer == nil {
		pacer = &FixedDelayPacer{Delay: DefaultDelay}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		uploader: uploader,
		ledger:   led,
		pacer:    pacer,
		logger:   logger,
		dryRun:   dryRun,
	}
}

// Pending marks aggregates found in the ledger as imported and returns
// those still to upload, preserving first-seen order.
func (im *Importer) Pending(orders []*order.Order) []*order.Order {
	pending := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if im.ledger.Contains(o.Key) {
			o.Imported = true
			continue
		}
		pending = append(pending, o)
	}
	return pending
}

// Run uploads every pending order sequentially and returns the per-order
// results plus the run summary.
//
// A rejected or failed order is logged and the loop continues; transport
// failures are isolated the same way as API rejections. The pacer runs
// after every attempt, success or not. The loop stops early only when the
// context ends.
func (im *Importer) Run(ctx context.Context, orders []*order.Order) ([]Result, Stats) {
	start := time.Now()

	pending := im.Pending(orders)
	stats := Stats{
		Orders:  len(orders),
		Pending: len(pending),
		Skipped: len(orders) - len(pending),
	}

	im.logger.Info("starting upload",
		zap.Int("orders", stats.Orders),
		zap.Int("pending", stats.Pending),
		zap.Int("already_imported", stats.Skipped),
	)

	results := make([]Result, 0, len(pending))

	for i, o := range pending {
		if err := ctx.Err(); err != nil {
			im.logger.Warn("upload loop stopped", zap.Error(err))
			break
		}

		im.logger.Info("uploading order",
			zap.Int("current", i+1),
			zap.Int("total", len(pending)),
			zap.String("email", o.Email),
		)

		res := im.uploadOne(ctx, o)
		results = append(results, res)

		if res.Success {
			stats.Uploaded++
			im.logger.Info("uploaded order",
				zap.Int("current", i+1),
				zap.Int("total", len(pending)),
				zap.Int64("order_id", res.OrderID),
			)
		} else {
			stats.Failed++
			var apiErr *shopify.APIError
			if errors.As(res.Err, &apiErr) {
				im.logger.Error("order rejected",
					zap.String("email", o.Email),
					zap.ByteString("errors", apiErr.Errors),
				)
			} else {
				im.logger.Error("order upload failed",
					zap.String("email", o.Email),
					zap.Error(res.Err),
				)
			}
		}

		im.pacer.Pace(ctx)
	}

	stats.Elapsed = time.Since(start)
	return results, stats
}

// uploadOne performs a single attempt and records success in the ledger.
func (im *Importer) uploadOne(ctx context.Context, o *order.Order) Result {
	res := Result{Key: o.Key, Email: o.Email}

	if im.dryRun {
		res.Success = true
		return res
	}

	created, err := im.uploader.CreateOrder(ctx, shopify.BuildPayload(o))
	if err != nil {
		res.Err = err
		return res
	}

	res.Success = true
	res.OrderID = created.ID
	o.Imported = true

	if err := im.ledger.MarkImported(o.Key, created.ID); err != nil {
		// The order is in the store; a ledger write failure must not fail
		// the run, but the operator needs to know dedup is degraded.
		im.logger.Warn("failed to record import in ledger",
			zap.String("key", o.Key),
			zap.Error(err),
		)
	}

	return res
}
