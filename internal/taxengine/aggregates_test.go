package taxengine

import (
	"testing"
	"time"

	"VyaparDash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(typ model.TransactionType, date time.Time, amount float64, category string) model.Transaction {
	return model.Transaction{OwnerID: "o1", Date: date, Amount: amount, Type: typ, Category: category}
}

func TestTopExpenseCategories(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeExpense, d, 60000, "Rent"),
		plain(model.TypeExpense, d, 60000, "Rent"),
		plain(model.TypeExpense, d, 50000, "Salaries & Wages"),
		plain(model.TypeExpense, d, 10000, "Software"),
		plain(model.TypeIncome, d, 900000, "Sales"), // income never ranks
	}

	top := TopExpenseCategories(txns, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Rent", top[0].Category)
	assert.Equal(t, 120000.0, top[0].Amount)
	assert.Equal(t, "Salaries & Wages", top[1].Category)
}

func TestTopExpenseCategoriesTieBreaksByName(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeExpense, d, 5000, "Travel"),
		plain(model.TypeExpense, d, 5000, "Marketing"),
	}
	top := TopExpenseCategories(txns, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Marketing", top[0].Category)
	assert.Equal(t, "Travel", top[1].Category)
}

func TestTopExpenseCategoriesEmpty(t *testing.T) {
	assert.Empty(t, TopExpenseCategories(nil, 5))
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeIncome, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), 100000, "Sales"),
		plain(model.TypeExpense, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 40000, "Rent"),
		plain(model.TypeIncome, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 50000, "Sales"),
		// Outside the window.
		plain(model.TypeIncome, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 999999, "Sales"),
	}

	points := MonthlyTrend(txns, now, 3)
	require.Len(t, points, 3)
	assert.Equal(t, "Jan 24", points[0].Month)
	assert.Equal(t, 100000.0, points[0].Revenue)
	assert.Equal(t, "Feb 24", points[1].Month)
	assert.Equal(t, 40000.0, points[1].Expenses)
	assert.Equal(t, "Mar 24", points[2].Month)
	assert.Equal(t, 50000.0, points[2].Revenue)
}

func TestMonthAndYearTotals(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeIncome, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 80000, "Sales"),
		plain(model.TypeExpense, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), 30000, "Rent"),
		plain(model.TypeIncome, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 20000, "Sales"),
	}

	revenue, expenses := MonthTotals(txns, now)
	assert.Equal(t, 80000.0, revenue)
	assert.Equal(t, 30000.0, expenses)

	revenue, expenses = YearTotals(txns, now)
	assert.Equal(t, 100000.0, revenue)
	assert.Equal(t, 30000.0, expenses)
}

func TestProfitability(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeIncome, now, 100000, "Sales"),
		plain(model.TypeExpense, now, 75000, "Rent"),
	}

	p := Profitability(txns, now)
	assert.True(t, p.Profitable)
	assert.Equal(t, 25000.0, p.NetProfit)
	assert.Equal(t, 25.0, p.Margin)
}

func TestProfitabilityZeroRevenueHasZeroMargin(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeExpense, now, 75000, "Rent"),
	}
	p := Profitability(txns, now)
	assert.False(t, p.Profitable)
	assert.Equal(t, 0.0, p.Margin)
	assert.Equal(t, -75000.0, p.NetProfit)
}

func TestCashPosition(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		plain(model.TypeIncome, d, 120000, "Sales"),
		plain(model.TypeExpense, d, 60000, "Rent"),
	}

	cs := CashPosition(txns)
	assert.Equal(t, 60000.0, cs.CashBalance)
	assert.Equal(t, 5000.0, cs.AvgMonthlyExpense)
	assert.Equal(t, 12, cs.RunwayMonths)
}

func TestCashPositionNoExpenses(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{plain(model.TypeIncome, d, 50000, "Sales")}

	cs := CashPosition(txns)
	assert.Equal(t, 50000.0, cs.CashBalance)
	assert.Equal(t, 0, cs.RunwayMonths)
}

func TestTDSBreakdown(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sec194J, sec194I := "194J", "194I"
	rate10 := 10.0

	txns := []model.Transaction{
		{OwnerID: "o1", Date: d, Amount: 50000, Type: model.TypeExpense, TDSSection: &sec194J, TDSRate: &rate10},
		{OwnerID: "o1", Date: d, Amount: 40000, Type: model.TypeExpense, TDSSection: &sec194I, TDSRate: &rate10},
		{OwnerID: "o1", Date: d, Amount: 30000, Type: model.TypeExpense, TDSSection: &sec194J, TDSRate: &rate10},
		plain(model.TypeExpense, d, 99999, "Rent"), // no TDS fields
	}

	sections := TDSBreakdown(txns)
	require.Len(t, sections, 2)
	assert.Equal(t, "194I", sections[0].Section)
	assert.Equal(t, 4000.0, sections[0].Amount)
	assert.Equal(t, "194J", sections[1].Section)
	assert.Equal(t, 8000.0, sections[1].Amount)
}

func TestGSTByRate(t *testing.T) {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn(model.TypeIncome, d, 11800, 18, model.GSTTypeCGSTSGST),
		txn(model.TypeExpense, d, 5900, 18, model.GSTTypeIGST),
		txn(model.TypeIncome, d, 5250, 5, model.GSTTypeCGSTSGST),
		plain(model.TypeExpense, d, 1000, "Rent"),
	}

	rates := GSTByRate(txns)
	require.Len(t, rates, 2)

	// Highest slab first.
	assert.Equal(t, 18.0, rates[0].Rate)
	assert.InDelta(t, 1800, rates[0].Output, 0.01)
	assert.InDelta(t, 900, rates[0].Input, 0.01)
	assert.InDelta(t, 900, rates[0].Net, 0.01)

	assert.Equal(t, 5.0, rates[1].Rate)
	assert.InDelta(t, 250, rates[1].Output, 0.01)
}
