package chat

import (
	"context"
	"testing"
	"time"

	"VyaparDash/internal/model"
	"VyaparDash/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "owner-1"

var testNow = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func newTestResponder(t *testing.T, txns []model.Transaction, summaries []model.GSTSummary) *RuleResponder {
	t.Helper()
	st := store.NewMemory()
	ctx := context.Background()
	if len(txns) > 0 {
		_, err := st.InsertTransactions(ctx, txns)
		require.NoError(t, err)
	}
	if len(summaries) > 0 {
		require.NoError(t, st.ReplaceGSTSummaries(ctx, testOwner, summaries))
	}
	r := NewRuleResponder(st)
	r.now = func() time.Time { return testNow }
	return r
}

func expense(amount float64, category string) model.Transaction {
	return model.Transaction{
		ID: category, OwnerID: testOwner, Date: testNow.AddDate(0, 0, -1),
		Amount: amount, Type: model.TypeExpense, Category: category,
	}
}

func income(amount float64) model.Transaction {
	return model.Transaction{
		ID: "inc", OwnerID: testOwner, Date: testNow.AddDate(0, 0, -1),
		Amount: amount, Type: model.TypeIncome, Category: "Sales",
	}
}

func TestTopExpensesRule(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{
		expense(60000, "Rent"),
		expense(20000, "Software"),
	}, nil)

	reply, err := r.Respond(context.Background(), testOwner, "What are my biggest expenses?")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "Rent")
	assert.Contains(t, reply.Message, "biggest expense")
	assert.NotNil(t, reply.Data)
}

func TestTopExpensesRuleEmpty(t *testing.T) {
	r := newTestResponder(t, nil, nil)
	reply, err := r.Respond(context.Background(), testOwner, "top expenses please")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "no expenses recorded")
	assert.Nil(t, reply.Data)
}

func TestGSTLiabilityRule(t *testing.T) {
	summary := model.GSTSummary{
		OwnerID: testOwner, Period: "2024-03",
		OutputCGST: 900, OutputSGST: 900, InputCGST: 200, InputSGST: 200,
		NetLiability: 1400,
	}
	r := newTestResponder(t, []model.Transaction{income(11800)}, []model.GSTSummary{summary})

	reply, err := r.Respond(context.Background(), testOwner, "How much GST do I owe?")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "GST liability")
	assert.Contains(t, reply.Message, "GSTR-3B")
}

func TestGSTLiabilityRuleCredit(t *testing.T) {
	summary := model.GSTSummary{
		OwnerID: testOwner, Period: "2024-03",
		InputCGST: 500, InputSGST: 500, NetLiability: -1000,
	}
	r := newTestResponder(t, []model.Transaction{income(11800)}, []model.GSTSummary{summary})

	reply, err := r.Respond(context.Background(), testOwner, "what is my gst payable")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "input credit")
}

func TestGSTLiabilityRuleNoActivity(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{income(11800)}, nil)
	reply, err := r.Respond(context.Background(), testOwner, "how much gst liability")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "No GST activity")
}

func TestRevenueTrendRule(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{income(100000)}, nil)
	reply, err := r.Respond(context.Background(), testOwner, "show me revenue trend")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "revenue has been")
}

func TestProfitabilityRule(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{
		income(100000),
		expense(40000, "Rent"),
	}, nil)

	reply, err := r.Respond(context.Background(), testOwner, "Am I profitable this month?")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "profitable")
}

func TestCashPositionRule(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{
		income(120000),
		expense(60000, "Rent"),
	}, nil)

	reply, err := r.Respond(context.Background(), testOwner, "what's my cash position?")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "cash position")
	assert.Contains(t, reply.Message, "runway")
}

func TestTDSRule(t *testing.T) {
	section := "194J"
	rate := 10.0
	txn := expense(50000, "Professional Fees")
	txn.TDSSection = &section
	txn.TDSRate = &rate

	r := newTestResponder(t, []model.Transaction{txn}, nil)
	reply, err := r.Respond(context.Background(), testOwner, "show my tds deductions")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "Section 194J")
	assert.Contains(t, reply.Message, "₹5,000")
}

func TestFallbackMonthSummary(t *testing.T) {
	r := newTestResponder(t, []model.Transaction{income(100000)}, nil)
	reply, err := r.Respond(context.Background(), testOwner, "tell me something interesting")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "summary of your current financial position")
	assert.Contains(t, reply.Message, "tell me something interesting")
}

func TestFallbackEmptyLedger(t *testing.T) {
	r := newTestResponder(t, nil, nil)
	reply, err := r.Respond(context.Background(), testOwner, "hello")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "no transactions yet")
}
