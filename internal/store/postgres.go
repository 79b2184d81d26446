package store

import (
	"context"
	"errors"

	"VyaparDash/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store over a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing pool. The caller owns the pool lifecycle.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Pool exposes the underlying pool for callers that need raw access.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	date DATE NOT NULL,
	description TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	type TEXT NOT NULL,
	category TEXT NOT NULL,
	gst_rate DOUBLE PRECISION,
	gst_type TEXT,
	tds_section TEXT,
	tds_rate DOUBLE PRECISION,
	party_name TEXT,
	party_gstin TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_transactions_owner_date ON transactions (owner_id, date DESC);

CREATE TABLE IF NOT EXISTS gst_summaries (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id UUID NOT NULL,
	period TEXT NOT NULL,
	output_cgst DOUBLE PRECISION NOT NULL DEFAULT 0,
	output_sgst DOUBLE PRECISION NOT NULL DEFAULT 0,
	output_igst DOUBLE PRECISION NOT NULL DEFAULT 0,
	input_cgst DOUBLE PRECISION NOT NULL DEFAULT 0,
	input_sgst DOUBLE PRECISION NOT NULL DEFAULT 0,
	input_igst DOUBLE PRECISION NOT NULL DEFAULT 0,
	net_liability DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (owner_id, period)
);

CREATE TABLE IF NOT EXISTS categories (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	type TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	is_default BOOLEAN NOT NULL DEFAULT false
);
`

// EnsureSchema creates the tables if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaDDL)
	return err
}

const txnColumns = `id, owner_id, date, description, amount, type, category,
	gst_rate, gst_type, tds_section, tds_rate, party_name, party_gstin`

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.OwnerID, &t.Date, &t.Description, &t.Amount, &t.Type,
		&t.Category, &t.GSTRate, &t.GSTType, &t.TDSSection, &t.TDSRate, &t.PartyName, &t.PartyGstin)
	return t, err
}

func (p *Postgres) ListTransactions(ctx context.Context, ownerID string) ([]model.Transaction, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE owner_id = $1 ORDER BY date DESC, created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]model.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (p *Postgres) InsertTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	copyRows := make([][]interface{}, len(txns))
	for i, t := range txns {
		id := t.ID
		if id == "" {
			id = uuid.New().String()
		}
		copyRows[i] = []interface{}{
			id, t.OwnerID, t.Date, t.Description, t.Amount, string(t.Type), t.Category,
			t.GSTRate, t.GSTType, t.TDSSection, t.TDSRate, t.PartyName, t.PartyGstin,
		}
	}
	n, err := p.pool.CopyFrom(
		ctx,
		pgx.Identifier{"transactions"},
		[]string{"id", "owner_id", "date", "description", "amount", "type", "category",
			"gst_rate", "gst_type", "tds_section", "tds_rate", "party_name", "party_gstin"},
		pgx.CopyFromRows(copyRows),
	)
	return int(n), err
}

func (p *Postgres) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM transactions WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAllTransactions(ctx context.Context, ownerID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1`, ownerID)
	return err
}

func (p *Postgres) ReplaceGSTSummaries(ctx context.Context, ownerID string, summaries []model.GSTSummary) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	periods := make([]string, 0, len(summaries))
	for _, s := range summaries {
		periods = append(periods, s.Period)
	}
	// Drop periods no longer present: absent row = no GST activity.
	_, err = tx.Exec(ctx,
		`DELETE FROM gst_summaries WHERE owner_id = $1 AND NOT (period = ANY($2))`,
		ownerID, periods)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		_, err = tx.Exec(ctx, `
			INSERT INTO gst_summaries (id, owner_id, period,
				output_cgst, output_sgst, output_igst,
				input_cgst, input_sgst, input_igst, net_liability)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (owner_id, period) DO UPDATE SET
				output_cgst = EXCLUDED.output_cgst,
				output_sgst = EXCLUDED.output_sgst,
				output_igst = EXCLUDED.output_igst,
				input_cgst = EXCLUDED.input_cgst,
				input_sgst = EXCLUDED.input_sgst,
				input_igst = EXCLUDED.input_igst,
				net_liability = EXCLUDED.net_liability,
				updated_at = now()`,
			uuid.New().String(), ownerID, s.Period,
			s.OutputCGST, s.OutputSGST, s.OutputIGST,
			s.InputCGST, s.InputSGST, s.InputIGST, s.NetLiability)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

const summaryColumns = `id, owner_id, period, output_cgst, output_sgst, output_igst,
	input_cgst, input_sgst, input_igst, net_liability`

func scanSummary(row pgx.Row) (model.GSTSummary, error) {
	var s model.GSTSummary
	err := row.Scan(&s.ID, &s.OwnerID, &s.Period, &s.OutputCGST, &s.OutputSGST, &s.OutputIGST,
		&s.InputCGST, &s.InputSGST, &s.InputIGST, &s.NetLiability)
	return s, err
}

func (p *Postgres) ListGSTSummaries(ctx context.Context, ownerID string) ([]model.GSTSummary, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+summaryColumns+` FROM gst_summaries WHERE owner_id = $1 ORDER BY period DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.GSTSummary, 0)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (p *Postgres) GetGSTSummary(ctx context.Context, ownerID, period string) (model.GSTSummary, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT `+summaryColumns+` FROM gst_summaries WHERE owner_id = $1 AND period = $2`,
		ownerID, period)
	s, err := scanSummary(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.GSTSummary{}, ErrNotFound
	}
	return s, err
}

func (p *Postgres) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, type, description, is_default FROM categories ORDER BY type, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.IsDefault); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// SeedCategories inserts the curated defaults, skipping names already present.
func (p *Postgres) SeedCategories(ctx context.Context, cats []model.Category) error {
	for _, c := range cats {
		_, err := p.pool.Exec(ctx, `
			INSERT INTO categories (id, name, type, description, is_default)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO NOTHING`,
			uuid.New().String(), c.Name, string(c.Type), c.Description, c.IsDefault)
		if err != nil {
			return err
		}
	}
	return nil
}
