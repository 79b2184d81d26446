// Package chat answers a fixed set of financial questions with canned
// aggregation queries. There is no language model behind it: an ordered rule
// table matches keywords in the lower-cased message and dispatches to a
// handler that runs taxengine aggregates over the owner's transactions. The
// Responder interface keeps the backend swappable should a real NLU service
// ever replace the rule table.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"VyaparDash/internal/inr"
	"VyaparDash/internal/model"
	"VyaparDash/internal/store"
	"VyaparDash/internal/taxengine"
)

// Reply is the responder output: a rendered message plus the raw numbers
// behind it for the UI to chart.
type Reply struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Responder answers one user message for one owner.
type Responder interface {
	Respond(ctx context.Context, ownerID, message string) (Reply, error)
}

// snapshot is the data every handler works from, loaded once per message.
type snapshot struct {
	txns           []model.Transaction
	currentSummary model.GSTSummary
	hasSummary     bool
	now            time.Time
}

type rule struct {
	match  func(q string) bool
	handle func(s snapshot) Reply
}

// RuleResponder is the keyword-matching implementation.
type RuleResponder struct {
	store store.Store
	rules []rule
	now   func() time.Time
}

// NewRuleResponder builds the responder with the standard rule table.
func NewRuleResponder(st store.Store) *RuleResponder {
	r := &RuleResponder{store: st, now: time.Now}
	r.rules = []rule{
		{matchAny("biggest expense", "top expense", "largest expense"), r.topExpenses},
		{matchAll("gst", anyOf("owe", "liability", "payable")), r.gstLiability},
		{matchAll("revenue", anyOf("trend")), r.revenueTrend},
		{matchAny("profitable", "profit"), r.profitability},
		{matchAll("cash", anyOf("balance", "position")), r.cashPosition},
		{matchAny("tds"), r.tdsBreakdown},
	}
	return r
}

func matchAny(keywords ...string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

func anyOf(keywords ...string) []string { return keywords }

func matchAll(keyword string, alternatives []string) func(string) bool {
	return func(q string) bool {
		if !strings.Contains(q, keyword) {
			return false
		}
		for _, alt := range alternatives {
			if strings.Contains(q, alt) {
				return true
			}
		}
		return false
	}
}

// Respond loads the owner's data once, then dispatches the first matching
// rule; unmatched messages get the month summary.
func (r *RuleResponder) Respond(ctx context.Context, ownerID, message string) (Reply, error) {
	txns, err := r.store.ListTransactions(ctx, ownerID)
	if err != nil {
		return Reply{}, err
	}

	now := r.now()
	s := snapshot{txns: txns, now: now}
	summary, err := r.store.GetGSTSummary(ctx, ownerID, model.Period(now))
	if err == nil {
		s.currentSummary = summary
		s.hasSummary = true
	} else if !errors.Is(err, store.ErrNotFound) {
		return Reply{}, err
	}

	q := strings.ToLower(message)
	for _, rule := range r.rules {
		if rule.match(q) {
			return rule.handle(s), nil
		}
	}
	return r.monthSummary(message, s), nil
}

func (r *RuleResponder) topExpenses(s snapshot) Reply {
	top := taxengine.TopExpenseCategories(s.txns, 5)
	if len(top) == 0 {
		return Reply{Message: "You have no expenses recorded yet, so there is nothing to rank. Import transactions to see your top spending categories."}
	}
	var b strings.Builder
	b.WriteString("Your top expense categories are:\n\n")
	for i, c := range top {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, c.Category, inr.Compact(c.Amount))
	}
	fmt.Fprintf(&b, "\n%s is your biggest expense, accounting for %s.",
		top[0].Category, inr.Compact(top[0].Amount))
	return Reply{Message: b.String(), Data: top}
}

func (r *RuleResponder) gstLiability(s snapshot) Reply {
	if !s.hasSummary {
		return Reply{Message: "No GST activity recorded for this month yet. Your liability will appear once GST-bearing transactions are imported."}
	}
	sum := s.currentSummary
	if sum.NetLiability > 0 {
		msg := fmt.Sprintf(
			"Your GST liability for this month is %s.\n\nBreakdown:\n- Output GST (collected): %s\n- Input GST (credit): %s\n\nGSTR-3B is due on the 20th of next month.",
			inr.Compact(sum.NetLiability), inr.Rupees(sum.TotalOutput()), inr.Rupees(sum.TotalInput()))
		return Reply{Message: msg, Data: sum}
	}
	msg := fmt.Sprintf(
		"You have no GST liability this month. In fact, you have an input credit of %s that can be carried forward.",
		inr.Rupees(-sum.NetLiability))
	return Reply{Message: msg, Data: sum}
}

func (r *RuleResponder) revenueTrend(s snapshot) Reply {
	points := taxengine.MonthlyTrend(s.txns, s.now, 6)
	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	if total == 0 {
		return Reply{Message: "No revenue recorded in the last 6 months, so there is no trend to show yet."}
	}

	first, last := points[0].Revenue, points[len(points)-1].Revenue
	trend := "decreasing"
	if last > first {
		trend = "increasing"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Your revenue has been %s over the last 6 months.\n\nMonthly breakdown:\n", trend)
	for _, p := range points {
		fmt.Fprintf(&b, "- %s: %s\n", p.Month, inr.Compact(p.Revenue))
	}
	if first > 0 {
		fmt.Fprintf(&b, "\nOverall change: %.1f%%", (last-first)/first*100)
	}
	return Reply{Message: b.String(), Data: points}
}

func (r *RuleResponder) profitability(s snapshot) Reply {
	p := taxengine.Profitability(s.txns, s.now)
	if p.Revenue == 0 && p.Expenses == 0 {
		return Reply{Message: "There are no transactions for this month yet, so profitability cannot be computed."}
	}
	if p.Profitable {
		msg := fmt.Sprintf(
			"Yes! You are profitable this month with a net profit of %s.\n\n- Revenue: %s\n- Expenses: %s\n- Profit margin: %.1f%%",
			inr.Compact(p.NetProfit), inr.Compact(p.Revenue), inr.Compact(p.Expenses), p.Margin)
		return Reply{Message: msg, Data: p}
	}
	msg := fmt.Sprintf(
		"This month shows a net loss of %s.\n\n- Revenue: %s\n- Expenses: %s\n\nConsider reviewing your expense categories for optimisation opportunities.",
		inr.Compact(-p.NetProfit), inr.Compact(p.Revenue), inr.Compact(p.Expenses))
	return Reply{Message: msg, Data: p}
}

func (r *RuleResponder) cashPosition(s snapshot) Reply {
	if len(s.txns) == 0 {
		return Reply{Message: "No transactions recorded yet, so your cash position cannot be computed."}
	}
	cs := taxengine.CashPosition(s.txns)
	if cs.AvgMonthlyExpense == 0 {
		msg := fmt.Sprintf("Your current cash position is %s. With no recorded expenses, runway cannot be estimated.",
			inr.Compact(cs.CashBalance))
		return Reply{Message: msg, Data: cs}
	}
	msg := fmt.Sprintf(
		"Your current cash position is %s.\n\nBased on your average monthly expenses of %s, you have approximately %d months of runway.",
		inr.Compact(cs.CashBalance), inr.Compact(cs.AvgMonthlyExpense), cs.RunwayMonths)
	return Reply{Message: msg, Data: cs}
}

func (r *RuleResponder) tdsBreakdown(s snapshot) Reply {
	sections := taxengine.TDSBreakdown(s.txns)
	if len(sections) == 0 {
		return Reply{Message: "No TDS deductions recorded. Transactions with a TDS section will show up here."}
	}
	var b strings.Builder
	b.WriteString("Your TDS deductions breakdown:\n\n")
	for _, sec := range sections {
		fmt.Fprintf(&b, "- Section %s: %s\n", sec.Section, inr.Rupees(sec.Amount))
	}
	b.WriteString("\nRemember to deposit TDS by the 7th of the following month.")
	return Reply{Message: b.String(), Data: sections}
}

func (r *RuleResponder) monthSummary(original string, s snapshot) Reply {
	if len(s.txns) == 0 {
		return Reply{Message: "You have no transactions yet. Import a bank statement or seed the demo data, then ask me about expenses, GST, profit or cash runway."}
	}
	revenue, expenses := taxengine.MonthTotals(s.txns, s.now)
	var liability float64
	if s.hasSummary {
		liability = s.currentSummary.NetLiability
	}
	msg := fmt.Sprintf(
		"I understand you're asking about %q. Here's a summary of your current financial position:\n\n"+
			"- This month's revenue: %s\n- This month's expenses: %s\n- Net profit: %s\n- GST liability: %s\n\n"+
			"Try asking specific questions like:\n- \"What are my biggest expenses?\"\n- \"How much GST do I owe?\"\n- \"Show me revenue trend\"\n- \"Am I profitable this month?\"",
		original, inr.Compact(revenue), inr.Compact(expenses), inr.Compact(revenue-expenses), inr.Compact(liability))
	return Reply{Message: msg}
}
