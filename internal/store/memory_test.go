package store

import (
	"context"
	"testing"
	"time"

	"VyaparDash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTransactionsScopedAndOrdered(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	older := model.Transaction{ID: "a", OwnerID: "o1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 100, Type: model.TypeExpense}
	newer := model.Transaction{ID: "b", OwnerID: "o1", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 200, Type: model.TypeIncome}
	other := model.Transaction{ID: "c", OwnerID: "o2", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: 300, Type: model.TypeIncome}

	count, err := m.InsertTransactions(ctx, []model.Transaction{older, newer, other})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	txns, err := m.ListTransactions(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "b", txns[0].ID, "newest first")
	assert.Equal(t, "a", txns[1].ID)
}

func TestMemoryInsertAssignsMissingIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.InsertTransactions(ctx, []model.Transaction{{OwnerID: "o1", Date: time.Now(), Amount: 1, Type: model.TypeExpense}})
	require.NoError(t, err)

	txns, err := m.ListTransactions(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.NotEmpty(t, txns[0].ID)
}

func TestMemoryDeleteTransaction(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.InsertTransactions(ctx, []model.Transaction{
		{ID: "a", OwnerID: "o1", Date: time.Now(), Amount: 1, Type: model.TypeExpense},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, m.DeleteTransaction(ctx, "o1", "missing"), ErrNotFound)
	assert.ErrorIs(t, m.DeleteTransaction(ctx, "o2", "a"), ErrNotFound, "wrong owner cannot delete")
	require.NoError(t, m.DeleteTransaction(ctx, "o1", "a"))

	txns, err := m.ListTransactions(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestMemoryReplaceGSTSummariesDropsStale(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.ReplaceGSTSummaries(ctx, "o1", []model.GSTSummary{
		{OwnerID: "o1", Period: "2024-01", NetLiability: 100},
		{OwnerID: "o1", Period: "2024-02", NetLiability: 200},
	}))
	require.NoError(t, m.ReplaceGSTSummaries(ctx, "o1", []model.GSTSummary{
		{OwnerID: "o1", Period: "2024-02", NetLiability: 250},
	}))

	_, err := m.GetGSTSummary(ctx, "o1", "2024-01")
	assert.ErrorIs(t, err, ErrNotFound)

	s, err := m.GetGSTSummary(ctx, "o1", "2024-02")
	require.NoError(t, err)
	assert.Equal(t, 250.0, s.NetLiability)

	summaries, err := m.ListGSTSummaries(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
}

func TestMemoryListGSTSummariesNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.ReplaceGSTSummaries(ctx, "o1", []model.GSTSummary{
		{OwnerID: "o1", Period: "2024-01"},
		{OwnerID: "o1", Period: "2024-03"},
		{OwnerID: "o1", Period: "2024-02"},
	}))

	summaries, err := m.ListGSTSummaries(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "2024-03", summaries[0].Period)
	assert.Equal(t, "2024-01", summaries[2].Period)
}

func TestMemoryDeleteAllTransactions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.InsertTransactions(ctx, []model.Transaction{
		{ID: "a", OwnerID: "o1", Date: time.Now(), Amount: 1, Type: model.TypeExpense},
		{ID: "b", OwnerID: "o2", Date: time.Now(), Amount: 2, Type: model.TypeIncome},
	})
	require.NoError(t, err)
	require.NoError(t, m.DeleteAllTransactions(ctx, "o1"))

	txns, _ := m.ListTransactions(ctx, "o1")
	assert.Empty(t, txns)
	txns, _ = m.ListTransactions(ctx, "o2")
	assert.Len(t, txns, 1, "other owners untouched")
}
