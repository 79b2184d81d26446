package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"VyaparDash/api"
	"VyaparDash/api/constants"
	"VyaparDash/api/utils"
	"VyaparDash/internal/importer"
	"VyaparDash/internal/store"
	"VyaparDash/internal/taxengine"
)

// Recompute rebuilds the owner's GST summaries from the full transaction
// set. It runs synchronously after every insert and delete so the stored
// summaries can never drift from the ledger.
func Recompute(ctx context.Context, st store.Store, ownerID string) error {
	txns, err := st.ListTransactions(ctx, ownerID)
	if err != nil {
		return err
	}
	summaries := taxengine.RecomputeGSTSummaries(ownerID, txns)
	return st.ReplaceGSTSummaries(ctx, ownerID, summaries)
}

// GetTransactions handles GET /api/transactions. The full set is returned
// unless the caller passes page/limit query parameters.
func GetTransactions(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := st.ListTransactions(r.Context(), api.OwnerID(r))
		if err != nil {
			api.LogError("list transactions: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchTransactions)
			return
		}

		if utils.Requested(r) {
			params, err := utils.ExtractPagination(r)
			if err != nil {
				api.RespondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			params.SetPaginationStats(len(txns))
			start := params.Offset
			if start > len(txns) {
				start = len(txns)
			}
			end := start + params.Limit
			if end > len(txns) {
				end = len(txns)
			}
			api.RespondWithJSON(w, map[string]interface{}{
				"transactions": txns[start:end],
				"pagination":   params,
			})
			return
		}

		api.RespondWithJSON(w, map[string]interface{}{"transactions": txns})
	}
}

// CreateTransactions handles POST /api/transactions. The body carries raw
// rows (bank-export shaped maps); they run through the import normalizer
// before landing in the store, then summaries are rebuilt.
func CreateTransactions(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req struct {
			Transactions []map[string]interface{} `json:"transactions"`
			Mapping      *importer.ColumnMapping  `json:"mapping,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Transactions) == 0 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrNoTransactions)
			return
		}

		rows := make([]importer.RawRow, 0, len(req.Transactions))
		keys := map[string]struct{}{}
		for _, item := range req.Transactions {
			row := make(importer.RawRow, len(item))
			for k, v := range item {
				if v == nil {
					continue
				}
				row[k] = fmt.Sprint(v)
				keys[k] = struct{}{}
			}
			rows = append(rows, row)
		}

		mapping := importer.ColumnMapping{}
		if req.Mapping != nil {
			mapping = *req.Mapping
		} else {
			headers := make([]string, 0, len(keys))
			for k := range keys {
				headers = append(headers, k)
			}
			mapping = importer.DetectColumns(headers)
		}

		ownerID := api.OwnerID(r)
		txns := importer.Normalize(ownerID, rows, mapping)
		count, err := st.InsertTransactions(ctx, txns)
		if err != nil {
			api.LogError("insert transactions: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrCreateTransactions)
			return
		}
		if err := Recompute(ctx, st, ownerID); err != nil {
			api.LogError("recompute after insert: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrRecomputeFailed)
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{"success": true, "count": count})
	}
}

// UploadTransactions handles POST /api/transactions/upload: a multipart
// CSV/XLSX/XLS statement file, columns auto-detected from the header row.
func UploadTransactions(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrFileUploadFailed)
			return
		}
		defer file.Close()

		records, err := importer.ParseUploadFile(file, importer.FileExt(header.Filename))
		if errors.Is(err, importer.ErrUnsupportedFile) {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrInvalidFileFormat)
			return
		}
		if err != nil || len(records) < 2 {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrEmptyFile)
			return
		}

		headers := records[0]
		rows := importer.RowsFromRecords(headers, records[1:])
		mapping := importer.DetectColumns(headers)

		ownerID := api.OwnerID(r)
		txns := importer.Normalize(ownerID, rows, mapping)
		count, err := st.InsertTransactions(ctx, txns)
		if err != nil {
			api.LogError("insert uploaded transactions: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrCreateTransactions)
			return
		}
		if err := Recompute(ctx, st, ownerID); err != nil {
			api.LogError("recompute after upload: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrRecomputeFailed)
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{
			"success":  true,
			"count":    count,
			"filename": header.Filename,
			"skipped":  len(rows) - count,
		})
	}
}

// GetCategories handles GET /api/categories.
func GetCategories(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := st.ListCategories(r.Context())
		if err != nil {
			api.LogError("list categories: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrFetchCategories)
			return
		}
		api.RespondWithJSON(w, map[string]interface{}{"categories": cats})
	}
}

// DeleteTransaction handles DELETE /api/transactions?id=<id>
func DeleteTransaction(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := r.URL.Query().Get("id")
		if id == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrTransactionID)
			return
		}
		ownerID := api.OwnerID(r)
		if err := st.DeleteTransaction(ctx, ownerID, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.RespondWithError(w, http.StatusNotFound, constants.ErrDeleteTransaction)
				return
			}
			api.LogError("delete transaction %s: %v", id, err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrDeleteTransaction)
			return
		}
		if err := Recompute(ctx, st, ownerID); err != nil {
			api.LogError("recompute after delete: %v", err)
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrRecomputeFailed)
			return
		}
		api.RespondWithResult(w, true, "")
	}
}
