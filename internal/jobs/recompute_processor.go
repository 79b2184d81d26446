package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"VyaparDash/internal/config"
	"VyaparDash/internal/logger"
	"VyaparDash/internal/model"
	"VyaparDash/internal/taxengine"

	"github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

// RecomputeConfig holds configuration for the nightly GST recompute job
type RecomputeConfig struct {
	Schedule  string // Cron schedule (default: "30 1 * * *" for 1:30 AM daily)
	BatchSize int    // Number of owners to process per run before yielding
	TimeZone  string // Timezone for scheduling
}

// NewDefaultRecomputeConfig creates a new RecomputeConfig with default values
func NewDefaultRecomputeConfig() *RecomputeConfig {
	schedule := os.Getenv("RECOMPUTE_SCHEDULE")
	if schedule == "" {
		schedule = config.DefaultRecomputeSchedule
	}

	batchSize := config.RecomputeBatchSize
	if bs := os.Getenv("RECOMPUTE_BATCH_SIZE"); bs != "" {
		if parsed, err := strconv.Atoi(bs); err == nil && parsed > 0 {
			batchSize = parsed
		}
	}

	return &RecomputeConfig{
		Schedule:  schedule,
		BatchSize: batchSize,
		TimeZone:  config.DefaultTimeZone,
	}
}

// RunRecomputeScheduler starts the cron job that rebuilds monthly GST summaries
// for every owner with recorded transactions. The API layer already recomputes
// after each mutation; this job repairs drift from partial failures.
func RunRecomputeScheduler(cfg *RecomputeConfig, db *sql.DB) error {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRecomputeSchedule
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = config.RecomputeBatchSize
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		loc = time.UTC
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Invalid timezone %s, falling back to UTC: %v", cfg.TimeZone, err))
	}

	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.Schedule, func() {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("Starting GST recompute job at %s", time.Now().In(loc).Format(time.RFC3339)))
		err := RecomputeAllOwners(db, cfg.BatchSize)
		if err != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("GST recompute job failed: %v", err))
			log.Printf("ERROR: GST recompute job failed: %v", err)
		} else {
			logger.GlobalLogger.LogAudit("GST recompute job completed successfully")
		}
	})

	if err != nil {
		return fmt.Errorf("unable to schedule GST recompute processor: %v", err)
	}

	c.Start()
	logger.GlobalLogger.LogAudit(fmt.Sprintf("GST recompute scheduler started with schedule: %s (timezone: %s)", cfg.Schedule, cfg.TimeZone))
	log.Printf("[AUDIT] GST recompute scheduler started: %s (%s)", cfg.Schedule, cfg.TimeZone)

	return nil
}

// RecomputeAllOwners rebuilds GST summaries for every owner found in the
// transactions table. Owners are processed one at a time so a failure for one
// owner does not block the rest.
func RecomputeAllOwners(db *sql.DB, batchSize int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	owners, err := listOwners(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to list owners: %v", err)
	}

	if len(owners) == 0 {
		log.Println("GST recompute: no owners with transactions, nothing to do")
		return nil
	}

	var failed int
	for i, ownerID := range owners {
		if err := recomputeOwner(ctx, db, ownerID); err != nil {
			failed++
			logger.GlobalLogger.LogAudit(fmt.Sprintf("GST recompute failed for owner %s: %v", ownerID, err))
			log.Printf("ERROR: GST recompute failed for owner %s: %v", ownerID, err)
			continue
		}
		if batchSize > 0 && (i+1)%batchSize == 0 {
			// Yield between batches so a large tenant set does not
			// monopolize the connection pool.
			time.Sleep(100 * time.Millisecond)
		}
	}

	log.Printf("GST recompute completed: %d owners processed, %d failed", len(owners), failed)
	if failed > 0 {
		return fmt.Errorf("recompute failed for %d of %d owners", failed, len(owners))
	}
	return nil
}

func listOwners(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT owner_id FROM transactions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

// recomputeOwner loads the owner's GST-bearing transactions, rebuilds the
// monthly summaries and replaces the stored rows in a single statement pair.
// Transactions without a GST rate contribute nothing to any summary, so they
// are filtered out at the query level.
func recomputeOwner(ctx context.Context, db *sql.DB, ownerID string) error {
	txns, err := loadGSTTransactions(ctx, db, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %v", err)
	}

	summaries := taxengine.RecomputeGSTSummaries(ownerID, txns)
	return bulkReplaceSummaries(ctx, db, ownerID, summaries)
}

func loadGSTTransactions(ctx context.Context, db *sql.DB, ownerID string) ([]model.Transaction, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, owner_id, date, amount, type, gst_rate, gst_type
		FROM transactions
		WHERE owner_id = $1 AND gst_rate IS NOT NULL AND gst_rate > 0
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var gstRate sql.NullFloat64
		var gstType sql.NullString
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Date, &t.Amount, &t.Type, &gstRate, &gstType); err != nil {
			return nil, err
		}
		if gstRate.Valid {
			t.GSTRate = &gstRate.Float64
		}
		if gstType.Valid {
			gt := gstType.String
			t.GSTType = &gt
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// bulkReplaceSummaries upserts all recomputed summary rows in one statement
// using unnest() arrays, then deletes any stored period the recompute no
// longer produced. Both statements run inside a transaction so readers never
// see a partially replaced set.
func bulkReplaceSummaries(ctx context.Context, db *sql.DB, ownerID string, summaries []model.GSTSummary) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	periods := make([]string, len(summaries))
	if len(summaries) > 0 {
		outputCGST := make([]float64, len(summaries))
		outputSGST := make([]float64, len(summaries))
		outputIGST := make([]float64, len(summaries))
		inputCGST := make([]float64, len(summaries))
		inputSGST := make([]float64, len(summaries))
		inputIGST := make([]float64, len(summaries))
		netLiability := make([]float64, len(summaries))

		for i, s := range summaries {
			periods[i] = s.Period
			outputCGST[i] = s.OutputCGST
			outputSGST[i] = s.OutputSGST
			outputIGST[i] = s.OutputIGST
			inputCGST[i] = s.InputCGST
			inputSGST[i] = s.InputSGST
			inputIGST[i] = s.InputIGST
			netLiability[i] = s.NetLiability
		}

		query := `
			INSERT INTO gst_summaries
				(owner_id, period, output_cgst, output_sgst, output_igst,
				 input_cgst, input_sgst, input_igst, net_liability, updated_at)
			SELECT $1,
				unnest($2::text[]),
				unnest($3::float8[]), unnest($4::float8[]), unnest($5::float8[]),
				unnest($6::float8[]), unnest($7::float8[]), unnest($8::float8[]),
				unnest($9::float8[]), now()
			ON CONFLICT (owner_id, period) DO UPDATE SET
				output_cgst = EXCLUDED.output_cgst,
				output_sgst = EXCLUDED.output_sgst,
				output_igst = EXCLUDED.output_igst,
				input_cgst = EXCLUDED.input_cgst,
				input_sgst = EXCLUDED.input_sgst,
				input_igst = EXCLUDED.input_igst,
				net_liability = EXCLUDED.net_liability,
				updated_at = now()
		`
		_, err = tx.ExecContext(ctx, query, ownerID,
			pq.Array(periods),
			pq.Array(outputCGST), pq.Array(outputSGST), pq.Array(outputIGST),
			pq.Array(inputCGST), pq.Array(inputSGST), pq.Array(inputIGST),
			pq.Array(netLiability))
		if err != nil {
			return fmt.Errorf("failed to upsert summaries: %v", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM gst_summaries
		WHERE owner_id = $1 AND period <> ALL($2::text[])
	`, ownerID, pq.Array(periods))
	if err != nil {
		return fmt.Errorf("failed to delete stale summaries: %v", err)
	}

	return tx.Commit()
}
