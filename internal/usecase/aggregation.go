package usecase

import "assistec/internal/domain/entities"

// Aggregation is the item roll-up the quote manager persists during
// recalculation.
//
// Counting rules:
//   - approved and client_supplies_part both count as approved for
//     ApprovedCount and for billing labor
//   - only approved parts are billed into TotalParts (a part the client
//     supplies is not charged)
type Aggregation struct {
	TotalParts              float64 `json:"total_parts"`
	TotalLabor              float64 `json:"total_labor"`
	TotalOverallPreDiscount float64 `json:"total_overall_pre_discount"`
	ApprovedCount           int     `json:"approved_count"`
	TotalCount              int     `json:"total_count"`
}

// aggregateItems is the single aggregation function shared by the quote and
// item lifecycle managers. Pure over the given items, so recalculation is
// idempotent by construction.
func aggregateItems(items []entities.QuoteItem) Aggregation {
	agg := Aggregation{TotalCount: len(items)}
	for _, it := range items {
		approvedEquivalent := it.ApprovalStatus == entities.ItemStatusApproved ||
			it.ApprovalStatus == entities.ItemStatusClientSuppliesPart
		if approvedEquivalent {
			agg.ApprovedCount++
		}
		switch it.ItemType {
		case entities.ItemTypePart:
			if it.ApprovalStatus == entities.ItemStatusApproved {
				agg.TotalParts += it.TotalPrice
			}
		case entities.ItemTypeService:
			if approvedEquivalent {
				agg.TotalLabor += it.TotalPrice
			}
		}
	}
	agg.TotalOverallPreDiscount = agg.TotalParts + agg.TotalLabor
	return agg
}

// deriveQuoteStatus maps the aggregation counts onto the quote-level status.
//
// QuoteStatusRejected is never produced here: a quote whose items were all
// rejected has ApprovedCount == 0 and stays pending.
func deriveQuoteStatus(agg Aggregation) entities.QuoteStatus {
	switch {
	case agg.TotalCount == 0:
		return entities.QuoteStatusPending
	case agg.ApprovedCount == 0:
		return entities.QuoteStatusPending
	case agg.ApprovedCount == agg.TotalCount:
		return entities.QuoteStatusFullyApproved
	default:
		return entities.QuoteStatusPartiallyApproved
	}
}
