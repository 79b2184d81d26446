package dashboard

import (
	"errors"
	"net/http"
	"time"

	"VyaparDash/api"
	"VyaparDash/api/constants"
	"VyaparDash/internal/model"
	"VyaparDash/internal/store"
	"VyaparDash/internal/taxengine"
)

// KPIs are the headline numbers on the landing page.
type KPIs struct {
	ThisMonthRevenue  float64 `json:"this_month_revenue"`
	ThisMonthExpenses float64 `json:"this_month_expenses"`
	NetProfit         float64 `json:"net_profit"`
	CashBalance       float64 `json:"cash_balance"`
	GSTLiability      float64 `json:"gst_liability"`
	YTDRevenue        float64 `json:"ytd_revenue"`
	YTDExpenses       float64 `json:"ytd_expenses"`
}

// Response is the full dashboard payload.
type Response struct {
	KPIs               KPIs                      `json:"kpis"`
	MonthlyData        []taxengine.MonthPoint    `json:"monthly_data"`
	TopExpenses        []taxengine.CategoryTotal `json:"top_expenses"`
	RecentTransactions []model.Transaction       `json:"recent_transactions"`
}

// GetDashboard handles GET /api/dashboard. Every figure is zero-safe: an
// empty ledger returns zeros, never NaN.
func GetDashboard(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID := api.OwnerID(r)
		now := time.Now()

		txns, err := st.ListTransactions(ctx, ownerID)
		if err != nil {
			api.LogError("dashboard list transactions: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchDashboard)
			return
		}

		var resp Response
		resp.KPIs.ThisMonthRevenue, resp.KPIs.ThisMonthExpenses = taxengine.MonthTotals(txns, now)
		resp.KPIs.NetProfit = resp.KPIs.ThisMonthRevenue - resp.KPIs.ThisMonthExpenses
		resp.KPIs.YTDRevenue, resp.KPIs.YTDExpenses = taxengine.YearTotals(txns, now)
		resp.KPIs.CashBalance = taxengine.CashPosition(txns).CashBalance

		summary, err := st.GetGSTSummary(ctx, ownerID, model.Period(now))
		if err == nil {
			resp.KPIs.GSTLiability = summary.NetLiability
		} else if !errors.Is(err, store.ErrNotFound) {
			api.LogError("dashboard gst summary: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchDashboard)
			return
		}

		resp.MonthlyData = taxengine.MonthlyTrend(txns, now, 12)
		resp.TopExpenses = taxengine.TopExpenseCategories(txns, 5)
		resp.RecentTransactions = txns
		if len(resp.RecentTransactions) > 10 {
			resp.RecentTransactions = resp.RecentTransactions[:10]
		}

		api.RespondWithJSON(w, resp)
	}
}
