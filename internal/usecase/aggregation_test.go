package usecase

import (
	"testing"

	"assistec/internal/domain/entities"
)

func TestAggregateItems(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		agg := aggregateItems(nil)
		if agg.TotalCount != 0 || agg.ApprovedCount != 0 {
			t.Fatalf("expected zero counts, got %+v", agg)
		}
		if agg.TotalParts != 0 || agg.TotalLabor != 0 || agg.TotalOverallPreDiscount != 0 {
			t.Fatalf("expected zero totals, got %+v", agg)
		}
	})

	t.Run("mixed decisions", func(t *testing.T) {
		items := []entities.QuoteItem{
			{ItemType: entities.ItemTypePart, TotalPrice: 100, ApprovalStatus: entities.ItemStatusApproved},
			{ItemType: entities.ItemTypeService, TotalPrice: 200, ApprovalStatus: entities.ItemStatusClientSuppliesPart},
			{ItemType: entities.ItemTypePart, TotalPrice: 50, ApprovalStatus: entities.ItemStatusRejected},
		}

		agg := aggregateItems(items)
		if agg.TotalParts != 100 {
			t.Fatalf("expected TotalParts 100, got %v", agg.TotalParts)
		}
		if agg.TotalLabor != 200 {
			t.Fatalf("expected TotalLabor 200, got %v", agg.TotalLabor)
		}
		if agg.TotalOverallPreDiscount != 300 {
			t.Fatalf("expected pre-discount total 300, got %v", agg.TotalOverallPreDiscount)
		}
		if agg.ApprovedCount != 2 || agg.TotalCount != 3 {
			t.Fatalf("expected 2/3 approved, got %d/%d", agg.ApprovedCount, agg.TotalCount)
		}
	})

	t.Run("client supplied part is not billed", func(t *testing.T) {
		items := []entities.QuoteItem{
			{ItemType: entities.ItemTypePart, TotalPrice: 80, ApprovalStatus: entities.ItemStatusClientSuppliesPart},
		}

		agg := aggregateItems(items)
		if agg.TotalParts != 0 {
			t.Fatalf("expected TotalParts 0, got %v", agg.TotalParts)
		}
		if agg.ApprovedCount != 1 {
			t.Fatalf("expected ApprovedCount 1, got %d", agg.ApprovedCount)
		}
	})

	t.Run("pending items count toward total only", func(t *testing.T) {
		items := []entities.QuoteItem{
			{ItemType: entities.ItemTypeService, TotalPrice: 150, ApprovalStatus: entities.ItemStatusPending},
		}

		agg := aggregateItems(items)
		if agg.TotalLabor != 0 || agg.ApprovedCount != 0 || agg.TotalCount != 1 {
			t.Fatalf("unexpected aggregation: %+v", agg)
		}
	})
}

func TestDeriveQuoteStatus(t *testing.T) {
	cases := []struct {
		name string
		agg  Aggregation
		want entities.QuoteStatus
	}{
		{"no items", Aggregation{}, entities.QuoteStatusPending},
		{"nothing decided", Aggregation{TotalCount: 3}, entities.QuoteStatusPending},
		{"all rejected", Aggregation{TotalCount: 2, ApprovedCount: 0}, entities.QuoteStatusPending},
		{"some approved", Aggregation{TotalCount: 3, ApprovedCount: 2}, entities.QuoteStatusPartiallyApproved},
		{"all approved", Aggregation{TotalCount: 3, ApprovedCount: 3}, entities.QuoteStatusFullyApproved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deriveQuoteStatus(tc.agg); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
