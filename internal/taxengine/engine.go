// Package taxengine derives India-specific tax aggregates from transaction
// sets: monthly GST summaries (output/input CGST, SGST, IGST and net
// liability) and TDS withholding totals by section. Every function is a pure,
// single pass over an in-memory slice; summaries are always rebuilt from
// scratch so the stored rows can never drift from the transactions.
package taxengine

import (
	"sort"

	"VyaparDash/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// gstComponent extracts the GST portion of a tax-inclusive amount:
// amount * rate / (100 + rate). Amounts entered from invoices and bank
// statements are gross, so the tax component is carved out rather than
// added on top. This single convention is used everywhere.
func gstComponent(amount, rate float64) decimal.Decimal {
	r := decimal.NewFromFloat(rate)
	return decimal.NewFromFloat(amount).Mul(r).Div(hundred.Add(r))
}

type accumulator struct {
	outputCGST, outputSGST, outputIGST decimal.Decimal
	inputCGST, inputSGST, inputIGST    decimal.Decimal
}

// RecomputeGSTSummaries rebuilds the monthly GST summaries for one owner's
// full transaction set. Transactions without a GST rate (or rated 0) are
// skipped; months with no GST-bearing transactions produce no summary.
// Output is sorted by period ascending and every field is rounded to the
// nearest whole rupee.
func RecomputeGSTSummaries(ownerID string, txns []model.Transaction) []model.GSTSummary {
	byPeriod := make(map[string]*accumulator)

	for _, t := range txns {
		if !t.HasGST() {
			continue
		}
		period := model.Period(t.Date)
		acc := byPeriod[period]
		if acc == nil {
			acc = &accumulator{}
			byPeriod[period] = acc
		}

		gst := gstComponent(t.Amount, *t.GSTRate)
		interState := t.GSTType != nil && *t.GSTType == model.GSTTypeIGST
		half := gst.Div(decimal.NewFromInt(2))

		if t.Type == model.TypeIncome {
			if interState {
				acc.outputIGST = acc.outputIGST.Add(gst)
			} else {
				acc.outputCGST = acc.outputCGST.Add(half)
				acc.outputSGST = acc.outputSGST.Add(half)
			}
		} else {
			if interState {
				acc.inputIGST = acc.inputIGST.Add(gst)
			} else {
				acc.inputCGST = acc.inputCGST.Add(half)
				acc.inputSGST = acc.inputSGST.Add(half)
			}
		}
	}

	periods := make([]string, 0, len(byPeriod))
	for p := range byPeriod {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	summaries := make([]model.GSTSummary, 0, len(periods))
	for _, p := range periods {
		acc := byPeriod[p]
		net := acc.outputCGST.Add(acc.outputSGST).Add(acc.outputIGST).
			Sub(acc.inputCGST).Sub(acc.inputSGST).Sub(acc.inputIGST)
		summaries = append(summaries, model.GSTSummary{
			OwnerID:      ownerID,
			Period:       p,
			OutputCGST:   toRupees(acc.outputCGST),
			OutputSGST:   toRupees(acc.outputSGST),
			OutputIGST:   toRupees(acc.outputIGST),
			InputCGST:    toRupees(acc.inputCGST),
			InputSGST:    toRupees(acc.inputSGST),
			InputIGST:    toRupees(acc.inputIGST),
			NetLiability: toRupees(net),
		})
	}
	return summaries
}

// toRupees rounds to the nearest whole rupee.
func toRupees(d decimal.Decimal) float64 {
	f, _ := d.Round(0).Float64()
	return f
}

// GSTSplit breaks one GST amount into its CGST/SGST/IGST components.
// Inter-state tax goes entirely to IGST, intra-state splits evenly.
func GSTSplit(gstAmount float64, gstType string) (cgst, sgst, igst float64) {
	if gstType == model.GSTTypeIGST {
		return 0, 0, gstAmount
	}
	return gstAmount / 2, gstAmount / 2, 0
}

// GSTAmount exposes the engine's tax-inclusive extraction for callers that
// display the GST component of a single transaction.
func GSTAmount(amount, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	f, _ := gstComponent(amount, rate).Float64()
	return f
}

// SummaryTotals sums output, input and net liability across summaries.
func SummaryTotals(summaries []model.GSTSummary) (output, input, net float64) {
	for _, s := range summaries {
		output += s.TotalOutput()
		input += s.TotalInput()
		net += s.NetLiability
	}
	return output, input, net
}
