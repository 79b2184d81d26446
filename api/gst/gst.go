package gst

import (
	"net/http"
	"time"

	"VyaparDash/api"
	"VyaparDash/api/constants"
	"VyaparDash/internal/model"
	"VyaparDash/internal/store"
	"VyaparDash/internal/taxengine"
)

// Summary is the all-time totals block plus the current-month breakdown.
// CurrentMonth is zeroed (not omitted) when the month has no GST activity,
// so the filing page always renders a complete card.
type Summary struct {
	TotalOutputGST    float64          `json:"total_output_gst"`
	TotalInputGST     float64          `json:"total_input_gst"`
	TotalNetLiability float64          `json:"total_net_liability"`
	CurrentMonth      model.GSTSummary `json:"current_month"`
}

// TrendPoint is one month of the filing-page chart.
type TrendPoint struct {
	Month     string  `json:"month"`
	Output    float64 `json:"output"`
	Input     float64 `json:"input"`
	Liability float64 `json:"liability"`
}

// GSTTransaction is a transaction row annotated with its GST component.
type GSTTransaction struct {
	model.Transaction
	GSTAmount float64 `json:"gst_amount"`
}

// Response is the full GST page payload.
type Response struct {
	Summary            Summary                   `json:"summary"`
	GSTByRate          []taxengine.RateBreakdown `json:"gst_by_rate"`
	MonthlyTrend       []TrendPoint              `json:"monthly_trend"`
	RecentTransactions []GSTTransaction          `json:"recent_transactions"`
	Filing             taxengine.FilingDates     `json:"filing"`
}

// GetGST handles GET /api/gst.
func GetGST(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID := api.OwnerID(r)
		now := time.Now()

		summaries, err := st.ListGSTSummaries(ctx, ownerID)
		if err != nil {
			api.LogError("gst list summaries: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchGST)
			return
		}
		txns, err := st.ListTransactions(ctx, ownerID)
		if err != nil {
			api.LogError("gst list transactions: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchGST)
			return
		}

		var resp Response
		resp.Summary.TotalOutputGST, resp.Summary.TotalInputGST, resp.Summary.TotalNetLiability =
			taxengine.SummaryTotals(summaries)

		currentPeriod := model.Period(now)
		resp.Summary.CurrentMonth = model.GSTSummary{OwnerID: ownerID, Period: currentPeriod}
		for _, s := range summaries {
			if s.Period == currentPeriod {
				resp.Summary.CurrentMonth = s
				break
			}
		}

		gstTxns := make([]model.Transaction, 0, len(txns))
		for _, t := range txns {
			if t.HasGST() {
				gstTxns = append(gstTxns, t)
			}
		}
		resp.GSTByRate = taxengine.GSTByRate(gstTxns)

		// Summaries arrive newest first; the chart wants oldest first.
		trendSrc := summaries
		if len(trendSrc) > 12 {
			trendSrc = trendSrc[:12]
		}
		resp.MonthlyTrend = make([]TrendPoint, 0, len(trendSrc))
		for i := len(trendSrc) - 1; i >= 0; i-- {
			s := trendSrc[i]
			month := s.Period
			if t, err := time.Parse("2006-01", s.Period); err == nil {
				month = t.Format("Jan 06")
			}
			resp.MonthlyTrend = append(resp.MonthlyTrend, TrendPoint{
				Month:     month,
				Output:    s.TotalOutput(),
				Input:     s.TotalInput(),
				Liability: s.NetLiability,
			})
		}

		recent := gstTxns
		if len(recent) > 15 {
			recent = recent[:15]
		}
		resp.RecentTransactions = make([]GSTTransaction, 0, len(recent))
		for _, t := range recent {
			resp.RecentTransactions = append(resp.RecentTransactions, GSTTransaction{
				Transaction: t,
				GSTAmount:   taxengine.GSTAmount(t.Amount, *t.GSTRate),
			})
		}

		resp.Filing = taxengine.NextFilingDates(now)
		api.RespondWithJSON(w, resp)
	}
}
