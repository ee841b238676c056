package closing

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"pos-terminal/internal/domain"
	"pos-terminal/internal/metrics"
	"pos-terminal/internal/session"
)

type backendClient interface {
	FetchSales(ctx context.Context, sellerID, branchID string, start, end time.Time) (domain.SalesSummary, error)
	CreateClosing(ctx context.Context, rec domain.ClosingRecord) error
	LastClosing(ctx context.Context, sellerID string) (*domain.ClosingRecord, error)
}

type closingLog interface {
	Record(ctx context.Context, rec domain.ClosingRecord) error
	LastBySeller(ctx context.Context, sellerID string) (*domain.ClosingRecord, error)
}

type closingPrinter interface {
	PrintClosing(ctx context.Context, rec domain.ClosingRecord) domain.PrintResult
}

type sessions interface {
	Current() (*session.Session, error)
}

// Service assembles register closings: it supplies the period boundaries,
// lets the order service do the aggregation, persists the closing and
// forwards the aggregates verbatim to the printer.
type Service struct {
	backend  backendClient
	log      closingLog
	printer  closingPrinter
	sessions sessions
	logger   *log.Logger
	now      func() time.Time

	mu   sync.Mutex
	busy bool
}

func New(backend backendClient, log closingLog, printer closingPrinter, sessions sessions, logger *log.Logger) *Service {
	return &Service{
		backend:  backend,
		log:      log,
		printer:  printer,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// PeriodStart computes the reporting window's start boundary in the
// terminal's local time. The afternoon period starts where the seller's
// last closing ended; with no prior closing on record it falls back to
// now, yielding a near-zero-width window reported as-is.
func PeriodStart(period domain.ClosingPeriod, lastClosingEnd time.Time, now time.Time) time.Time {
	switch period {
	case domain.PeriodMorning:
		return time.Date(now.Year(), now.Month(), now.Day(), 6, 0, 0, 0, now.Location())
	case domain.PeriodAfternoon:
		if lastClosingEnd.IsZero() {
			return now
		}
		return lastClosingEnd
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

// Result pairs the completed closing with an optional print warning.
type Result struct {
	Record       domain.ClosingRecord `json:"record"`
	PrintWarning string               `json:"printWarning,omitempty"`
}

// Run performs one closing for the logged-in seller. Only one closing may
// be in flight at a time; a second request while busy is rejected the
// same way a second payment attempt is.
func (s *Service) Run(ctx context.Context, period domain.ClosingPeriod) (Result, error) {
	sess, err := s.sessions.Current()
	if err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Result{}, domain.ErrClosingInFlight
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	now := s.now()
	start := PeriodStart(period, s.lastClosingEnd(ctx, sess.Seller.ID), now)

	summary, err := s.backend.FetchSales(ctx, sess.Seller.ID, sess.BranchID, start, now)
	if err != nil {
		return Result{}, fmt.Errorf("fetch sales aggregates: %w", err)
	}
	if missing := summary.MissingMethods(); len(missing) > 0 {
		// Contract violation on the service side. Report it, never
		// reconstruct the missing buckets locally.
		s.logger.Printf("sales summary missing method buckets %v for seller %s", missing, sess.Seller.ID)
	}

	rec := domain.ClosingRecord{
		SellerID:   sess.Seller.ID,
		SellerName: sess.Seller.Name,
		BranchID:   sess.BranchID,
		Period:     period,
		StartAt:    start,
		EndAt:      now,
		Summary:    summary,
	}

	if err := s.backend.CreateClosing(ctx, rec); err != nil {
		return Result{}, fmt.Errorf("create closing: %w", err)
	}
	metrics.ClosingsPerformed.Inc()

	if err := s.log.Record(ctx, rec); err != nil {
		// The closing is already accepted upstream; a local log miss
		// only degrades the afternoon-boundary lookup.
		s.logger.Printf("record closing locally: %v", err)
	}

	warning := ""
	res := s.printer.PrintClosing(ctx, rec)
	if !res.Success || res.PrinterError {
		if !res.Success {
			metrics.PrintFailures.Inc()
		}
		warning = res.Message
		if warning == "" {
			warning = "closing ticket could not be printed"
		}
		s.logger.Printf("print closing for seller %s: %s", sess.Seller.ID, warning)
	}

	return Result{Record: rec, PrintWarning: warning}, nil
}

// lastClosingEnd looks up when the seller last closed the register,
// preferring the local log and falling back to the backend. Zero time
// means no closing on record anywhere.
func (s *Service) lastClosingEnd(ctx context.Context, sellerID string) time.Time {
	if rec, err := s.log.LastBySeller(ctx, sellerID); err != nil {
		s.logger.Printf("local last closing lookup: %v", err)
	} else if rec != nil {
		return rec.EndAt
	}

	rec, err := s.backend.LastClosing(ctx, sellerID)
	if err != nil {
		s.logger.Printf("backend last closing lookup: %v", err)
		return time.Time{}
	}
	if rec == nil {
		return time.Time{}
	}
	return rec.EndAt
}
