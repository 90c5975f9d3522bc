/*
scheduler.go - Automated overdue installment sweep

PURPOSE:
  Periodically scans the report store for installment plans whose due date
  has passed with money still outstanding and logs them for follow-up.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Reuses the same OverdueScanner the API endpoint serves
  - Keeps a snapshot of the latest sweep for cheap reads

CONFIGURATION:
  - CheckInterval: How often to sweep (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewOverdueSweeper(store, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: ListOverdue endpoint (on-demand scan)
  - booking/overdue.go: OverdueScanner
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/traveldesk/sales-engine/booking"
)

// OverdueSweeper handles the periodic overdue-installment scan.
type OverdueSweeper struct {
	Scanner       *booking.OverdueScanner
	CheckInterval time.Duration
	Enabled       bool

	log    *logrus.Logger
	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex

	lastSweep []booking.OverdueInstallment
}

// NewOverdueSweeper creates a new sweeper over the given store.
func NewOverdueSweeper(store booking.ReportStore, log *logrus.Logger) *OverdueSweeper {
	return &OverdueSweeper{
		Scanner:       booking.NewOverdueScanner(store),
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		log:           log,
		stop:          make(chan bool),
	}
}

// Start begins the sweeper.
func (s *OverdueSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.log.Info("overdue sweeper disabled, not starting")
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.wg.Add(1)

	go s.run(s.ticker)

	s.log.WithField("interval", s.CheckInterval).Info("overdue sweeper started")
}

// Stop stops the sweeper and waits for an in-flight sweep to finish.
// The wait happens outside the mutex: sweep() takes it to publish results,
// so holding it here would deadlock against a running sweep.
func (s *OverdueSweeper) Stop() {
	s.mu.Lock()
	ticker := s.ticker
	if ticker != nil {
		ticker.Stop()
		close(s.stop)
		s.ticker = nil
	}
	s.mu.Unlock()

	if ticker == nil {
		return
	}
	s.wg.Wait()
	s.log.Info("overdue sweeper stopped")
}

func (s *OverdueSweeper) run(ticker *time.Ticker) {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *OverdueSweeper) sweep() {
	ctx := context.Background()
	now := time.Now()

	overdue, err := s.Scanner.FindOverdue(ctx, now)
	if err != nil {
		s.log.WithError(err).Error("overdue sweep failed")
		return
	}

	s.mu.Lock()
	s.lastSweep = overdue
	s.mu.Unlock()

	if len(overdue) == 0 {
		return
	}

	for _, o := range overdue {
		s.log.WithFields(logrus.Fields{
			"booking_id": o.Report.BookingID,
			"customer":   o.Report.CustomerName,
			"agent":      o.Report.AgentName,
			"due_date":   o.Report.DueDate,
			"remaining":  booking.FormatAmount(o.Remaining),
		}).Warn("installment plan overdue")
	}
	s.log.WithField("count", len(overdue)).Info("overdue sweep completed")
}

// RunNow triggers an immediate sweep (for testing/admin).
func (s *OverdueSweeper) RunNow() {
	s.sweep()
}

// LastSweep returns the result of the most recent sweep.
func (s *OverdueSweeper) LastSweep() []booking.OverdueInstallment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.OverdueInstallment, len(s.lastSweep))
	copy(out, s.lastSweep)
	return out
}
