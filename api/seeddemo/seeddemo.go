package seeddemo

import (
	"math/rand"
	"net/http"
	"time"

	"VyaparDash/api"
	"VyaparDash/api/constants"
	"VyaparDash/api/transactions"
	"VyaparDash/internal/seed"
	"VyaparDash/internal/store"
)

// SeedDemoData handles POST /api/seed: wipes the owner's ledger, generates
// twelve months of sample transactions and rebuilds the GST summaries.
// Demo/staging convenience.
func SeedDemoData(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ownerID := api.OwnerID(r)

		if err := st.DeleteAllTransactions(ctx, ownerID); err != nil {
			api.LogError("seed wipe: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrSeedFailed)
			return
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		txns := seed.Transactions(ownerID, time.Now(), rng)
		count, err := st.InsertTransactions(ctx, txns)
		if err != nil {
			api.LogError("seed insert: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrSeedFailed)
			return
		}
		if err := transactions.Recompute(ctx, st, ownerID); err != nil {
			api.LogError("seed recompute: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrRecomputeFailed)
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{"success": true, "count": count})
	}
}
