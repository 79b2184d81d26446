package taxengine

import (
	"math"
	"sort"
	"time"

	"VyaparDash/internal/model"
)

// CategoryTotal is one row of the top-expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// TopExpenseCategories sums expenses by category and returns the n largest,
// ties broken by category name so repeated runs order identically.
func TopExpenseCategories(txns []model.Transaction, n int) []CategoryTotal {
	byCategory := make(map[string]float64)
	for _, t := range txns {
		if t.Type == model.TypeExpense {
			byCategory[t.Category] += t.Amount
		}
	}
	totals := make([]CategoryTotal, 0, len(byCategory))
	for c, amt := range byCategory {
		totals = append(totals, CategoryTotal{Category: c, Amount: amt})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount != totals[j].Amount {
			return totals[i].Amount > totals[j].Amount
		}
		return totals[i].Category < totals[j].Category
	})
	if len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// MonthPoint is one month of the revenue/expense trend series.
type MonthPoint struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
}

// MonthlyTrend sums income and expenses for each of the trailing `months`
// calendar months ending at now's month, oldest first. Transaction dates are
// matched against each month's inclusive [start, end] range.
func MonthlyTrend(txns []model.Transaction, now time.Time, months int) []MonthPoint {
	points := make([]MonthPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

		var p MonthPoint
		p.Month = start.Format("Jan 06")
		for _, t := range txns {
			if t.Date.Before(start) || t.Date.After(end) {
				continue
			}
			if t.Type == model.TypeIncome {
				p.Revenue += t.Amount
			} else {
				p.Expenses += t.Amount
			}
		}
		points = append(points, p)
	}
	return points
}

// MonthTotals sums income and expenses for the calendar month containing now.
func MonthTotals(txns []model.Transaction, now time.Time) (revenue, expenses float64) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, t := range txns {
		if t.Date.Before(start) {
			continue
		}
		if t.Type == model.TypeIncome {
			revenue += t.Amount
		} else {
			expenses += t.Amount
		}
	}
	return revenue, expenses
}

// YearTotals sums income and expenses from January 1 of now's year.
func YearTotals(txns []model.Transaction, now time.Time) (revenue, expenses float64) {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	for _, t := range txns {
		if t.Date.Before(start) {
			continue
		}
		if t.Type == model.TypeIncome {
			revenue += t.Amount
		} else {
			expenses += t.Amount
		}
	}
	return revenue, expenses
}

// Profit is the month profitability result.
type Profit struct {
	Revenue    float64 `json:"revenue"`
	Expenses   float64 `json:"expenses"`
	NetProfit  float64 `json:"net_profit"`
	Margin     float64 `json:"margin_percent"`
	Profitable bool    `json:"profitable"`
}

// Profitability computes this month's net profit and margin. Margin is 0
// when there is no revenue; it is never NaN or Inf.
func Profitability(txns []model.Transaction, now time.Time) Profit {
	revenue, expenses := MonthTotals(txns, now)
	p := Profit{
		Revenue:   revenue,
		Expenses:  expenses,
		NetProfit: revenue - expenses,
	}
	p.Profitable = p.NetProfit > 0
	if revenue > 0 {
		p.Margin = p.NetProfit / revenue * 100
	}
	return p
}

// CashStatus is the cash balance and runway result.
type CashStatus struct {
	CashBalance       float64 `json:"cash_balance"`
	AvgMonthlyExpense float64 `json:"avg_monthly_expense"`
	RunwayMonths      int     `json:"runway_months"`
}

// CashPosition computes total cash on hand and months of runway at the
// trailing-twelve-month average burn. Runway is 0 when there are no
// expenses to average.
func CashPosition(txns []model.Transaction) CashStatus {
	var income, expenses float64
	for _, t := range txns {
		if t.Type == model.TypeIncome {
			income += t.Amount
		} else {
			expenses += t.Amount
		}
	}
	st := CashStatus{
		CashBalance:       income - expenses,
		AvgMonthlyExpense: expenses / 12,
	}
	if st.AvgMonthlyExpense > 0 {
		st.RunwayMonths = int(math.Floor(st.CashBalance / st.AvgMonthlyExpense))
	}
	return st
}

// SectionTotal is one row of the TDS breakdown.
type SectionTotal struct {
	Section string  `json:"section"`
	Amount  float64 `json:"amount"`
}

// TDSBreakdown groups withholding by section, summing amount * rate / 100
// per transaction, sections sorted ascending.
func TDSBreakdown(txns []model.Transaction) []SectionTotal {
	bySection := make(map[string]float64)
	for _, t := range txns {
		if t.TDSSection == nil || t.TDSRate == nil {
			continue
		}
		bySection[*t.TDSSection] += t.Amount * *t.TDSRate / 100
	}
	sections := make([]SectionTotal, 0, len(bySection))
	for s, amt := range bySection {
		sections = append(sections, SectionTotal{Section: s, Amount: amt})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Section < sections[j].Section })
	return sections
}

// RateBreakdown is one GST slab's output/input/net totals.
type RateBreakdown struct {
	Rate   float64 `json:"rate"`
	Output float64 `json:"output"`
	Input  float64 `json:"input"`
	Net    float64 `json:"net"`
}

// GSTByRate totals the GST component per slab across all GST-bearing
// transactions, highest rate first.
func GSTByRate(txns []model.Transaction) []RateBreakdown {
	type pair struct{ output, input float64 }
	byRate := make(map[float64]*pair)
	for _, t := range txns {
		if !t.HasGST() {
			continue
		}
		p := byRate[*t.GSTRate]
		if p == nil {
			p = &pair{}
			byRate[*t.GSTRate] = p
		}
		gst := GSTAmount(t.Amount, *t.GSTRate)
		if t.Type == model.TypeIncome {
			p.output += gst
		} else {
			p.input += gst
		}
	}
	rates := make([]RateBreakdown, 0, len(byRate))
	for r, p := range byRate {
		rates = append(rates, RateBreakdown{Rate: r, Output: p.output, Input: p.input, Net: p.output - p.input})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].Rate > rates[j].Rate })
	return rates
}
