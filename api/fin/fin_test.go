package fin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"VyaparDash/api/fin"
	"VyaparDash/internal/model"
	"VyaparDash/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "22222222-2222-2222-2222-222222222222"

func newServer(st store.Store) *httptest.Server {
	return httptest.NewServer(fin.NewRouter(st))
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	srv := newServer(store.NewMemory())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMethodNotAllowedOnTransactions(t *testing.T) {
	srv := newServer(store.NewMemory())
	defer srv.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/transactions", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestDashboardEmptyLedgerIsZeroSafe(t *testing.T) {
	srv := newServer(store.NewMemory())
	defer srv.Close()

	var body struct {
		KPIs struct {
			ThisMonthRevenue float64 `json:"this_month_revenue"`
			NetProfit        float64 `json:"net_profit"`
			CashBalance      float64 `json:"cash_balance"`
			GSTLiability     float64 `json:"gst_liability"`
		} `json:"kpis"`
		MonthlyData []interface{} `json:"monthly_data"`
	}
	resp := getJSON(t, srv.URL+"/api/dashboard?owner_id="+owner, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, body.KPIs.ThisMonthRevenue)
	assert.Zero(t, body.KPIs.GSTLiability)
	assert.Len(t, body.MonthlyData, 12, "trend always covers 12 months")
}

func TestDashboardKPIs(t *testing.T) {
	st := store.NewMemory()
	now := time.Now()
	gstRate := 18.0
	gstType := model.GSTTypeCGSTSGST
	_, err := st.InsertTransactions(context.Background(), []model.Transaction{
		{ID: "i1", OwnerID: owner, Date: now, Description: "Invoice", Amount: 118000,
			Type: model.TypeIncome, Category: "Sales", GSTRate: &gstRate, GSTType: &gstType},
		{ID: "e1", OwnerID: owner, Date: now, Description: "Rent", Amount: 40000,
			Type: model.TypeExpense, Category: "Rent"},
	})
	require.NoError(t, err)
	require.NoError(t, st.ReplaceGSTSummaries(context.Background(), owner, []model.GSTSummary{
		{OwnerID: owner, Period: model.Period(now), NetLiability: 18000},
	}))

	srv := newServer(st)
	defer srv.Close()

	var body struct {
		KPIs struct {
			ThisMonthRevenue  float64 `json:"this_month_revenue"`
			ThisMonthExpenses float64 `json:"this_month_expenses"`
			NetProfit         float64 `json:"net_profit"`
			GSTLiability      float64 `json:"gst_liability"`
		} `json:"kpis"`
		TopExpenses []struct {
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
		} `json:"top_expenses"`
	}
	resp := getJSON(t, srv.URL+"/api/dashboard?owner_id="+owner, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 118000.0, body.KPIs.ThisMonthRevenue)
	assert.Equal(t, 40000.0, body.KPIs.ThisMonthExpenses)
	assert.Equal(t, 78000.0, body.KPIs.NetProfit)
	assert.Equal(t, 18000.0, body.KPIs.GSTLiability)
	require.Len(t, body.TopExpenses, 1)
	assert.Equal(t, "Rent", body.TopExpenses[0].Category)
}

func TestGSTEndpoint(t *testing.T) {
	st := store.NewMemory()
	now := time.Now()
	gstRate := 18.0
	gstType := model.GSTTypeCGSTSGST
	_, err := st.InsertTransactions(context.Background(), []model.Transaction{
		{ID: "i1", OwnerID: owner, Date: now, Description: "Invoice", Amount: 11800,
			Type: model.TypeIncome, Category: "Sales", GSTRate: &gstRate, GSTType: &gstType},
	})
	require.NoError(t, err)
	require.NoError(t, st.ReplaceGSTSummaries(context.Background(), owner, []model.GSTSummary{
		{OwnerID: owner, Period: model.Period(now), OutputCGST: 900, OutputSGST: 900, NetLiability: 1800},
	}))

	srv := newServer(st)
	defer srv.Close()

	var body struct {
		Summary struct {
			TotalOutputGST    float64 `json:"total_output_gst"`
			TotalNetLiability float64 `json:"total_net_liability"`
			CurrentMonth      struct {
				Period string `json:"period"`
			} `json:"current_month"`
		} `json:"summary"`
		GSTByRate []struct {
			Rate float64 `json:"rate"`
		} `json:"gst_by_rate"`
		RecentTransactions []struct {
			GSTAmount float64 `json:"gst_amount"`
		} `json:"recent_transactions"`
	}
	resp := getJSON(t, srv.URL+"/api/gst?owner_id="+owner, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1800.0, body.Summary.TotalOutputGST)
	assert.Equal(t, 1800.0, body.Summary.TotalNetLiability)
	assert.Equal(t, model.Period(now), body.Summary.CurrentMonth.Period)
	require.Len(t, body.GSTByRate, 1)
	assert.Equal(t, 18.0, body.GSTByRate[0].Rate)
	require.Len(t, body.RecentTransactions, 1)
	assert.InDelta(t, 1800, body.RecentTransactions[0].GSTAmount, 0.01)
}

func TestChatEndpoint(t *testing.T) {
	srv := newServer(store.NewMemory())
	defer srv.Close()

	payload := bytes.NewReader([]byte(`{"message":"what are my biggest expenses?"}`))
	resp, err := http.Post(srv.URL+"/api/chat?owner_id="+owner, "application/json", payload)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	srv := newServer(store.NewMemory())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/chat", "application/json", bytes.NewReader([]byte(`{"message":""}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSeedEndpointPopulatesLedgerAndSummaries(t *testing.T) {
	st := store.NewMemory()
	srv := newServer(st)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/seed?owner_id="+owner, "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool    `json:"success"`
		Count   float64 `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.GreaterOrEqual(t, body.Count, 180.0)

	txns, err := st.ListTransactions(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, txns, int(body.Count))

	summaries, err := st.ListGSTSummaries(context.Background(), owner)
	require.NoError(t, err)
	assert.NotEmpty(t, summaries, "seeding must rebuild GST summaries")
}
