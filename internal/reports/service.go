package reports

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/purchasebook/purchasebook/internal/purchases"
)

// Service runs the reporting aggregates.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary fans the four independent aggregates out concurrently. Sums and
// counts over an empty window come back as zero, never as an error.
func (s *Service) Summary(ctx context.Context, r DateRange) (ReportSummary, error) {
	var summary ReportSummary

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.TotalPurchases, err = s.repo.TotalInvoiceValue(ctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalGST, err = s.repo.TotalGST(ctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalSuppliers, err = s.repo.DistinctSuppliers(ctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalItems, err = s.repo.ItemCount(ctx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		return ReportSummary{}, fmt.Errorf("report summary: %w", err)
	}
	return summary, nil
}

// BySupplier groups invoice value by supplier name.
func (s *Service) BySupplier(ctx context.Context, r DateRange) ([]PurchasesBySupplier, error) {
	rows, err := s.repo.BySupplier(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("purchases by supplier: %w", err)
	}
	if rows == nil {
		rows = []PurchasesBySupplier{}
	}
	return rows, nil
}

// Export returns the entries in range, most recent business date first.
func (s *Service) Export(ctx context.Context, r DateRange) ([]purchases.PurchaseEntry, error) {
	entries, err := s.repo.EntriesInRange(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("export purchases: %w", err)
	}
	if entries == nil {
		entries = []purchases.PurchaseEntry{}
	}
	return entries, nil
}
