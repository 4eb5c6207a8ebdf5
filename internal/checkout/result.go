package checkout

import (
	"fmt"
	"strings"

	"github.com/ThanhY111003/dealer-console/internal/models"
)

// maxInlineCodes bounds how many order codes the success summary spells out
// before collapsing the rest into "+N more".
const maxInlineCodes = 3

// Result is the settled outcome of one checkout run.
type Result struct {
	Succeeded []Succeeded
	Failed    []Failed
	// Skipped holds items never attempted because the run was cancelled.
	Skipped []models.CartItem
	// CartCleared reports whether the post-checkout cart clear went through.
	CartCleared bool
}

// SuccessTotal sums TotalAmount over the created orders.
func (r *Result) SuccessTotal() float64 {
	var total float64
	for _, s := range r.Succeeded {
		total += s.Order.TotalAmount
	}
	return total
}

// SuccessSummary renders the aggregate success notice: count, summed
// amount, and up to three order codes with a "+N more" collapse. Empty when
// nothing succeeded.
func (r *Result) SuccessSummary() string {
	if len(r.Succeeded) == 0 {
		return ""
	}

	codes := make([]string, 0, maxInlineCodes)
	for i, s := range r.Succeeded {
		if i == maxInlineCodes {
			break
		}
		codes = append(codes, s.Order.OrderCode)
	}

	summary := fmt.Sprintf("%d order(s) created, total %.2f: %s",
		len(r.Succeeded), r.SuccessTotal(), strings.Join(codes, ", "))
	if extra := len(r.Succeeded) - maxInlineCodes; extra > 0 {
		summary += fmt.Sprintf(" +%d more", extra)
	}
	return summary
}

// FailureSummary renders the aggregate failure notice. Empty when nothing
// failed.
func (r *Result) FailureSummary() string {
	if len(r.Failed) == 0 {
		return ""
	}
	return fmt.Sprintf("%d item(s) could not be ordered", len(r.Failed))
}
