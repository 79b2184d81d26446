package fin

import (
	"fmt"
	"log"
	"net/http"

	"VyaparDash/api/chat"
	"VyaparDash/api/dashboard"
	"VyaparDash/api/gst"
	"VyaparDash/api/seeddemo"
	"VyaparDash/api/transactions"
	chatcore "VyaparDash/internal/chat"
	"VyaparDash/internal/store"

	"github.com/gorilla/mux"
)

// NewRouter wires every dashboard endpoint onto a mux router. Handlers take
// the store interface so tests can mount the same router on an in-memory
// store.
func NewRouter(st store.Store) *mux.Router {
	router := mux.NewRouter()

	responder := chatcore.NewRuleResponder(st)

	router.HandleFunc("/api/transactions", transactions.GetTransactions(st)).Methods("GET")
	router.HandleFunc("/api/transactions", transactions.CreateTransactions(st)).Methods("POST")
	router.HandleFunc("/api/transactions", transactions.DeleteTransaction(st)).Methods("DELETE")
	router.HandleFunc("/api/transactions/upload", transactions.UploadTransactions(st)).Methods("POST")
	router.HandleFunc("/api/categories", transactions.GetCategories(st)).Methods("GET")
	router.HandleFunc("/api/dashboard", dashboard.GetDashboard(st)).Methods("GET")
	router.HandleFunc("/api/gst", gst.GetGST(st)).Methods("GET")
	router.HandleFunc("/api/chat", chat.PostChat(responder)).Methods("POST")
	router.HandleFunc("/api/seed", seeddemo.SeedDemoData(st)).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Fin Service is healthy"))
	}).Methods("GET")

	return router
}

func StartFinService(st store.Store, port int) {
	if port == 0 {
		port = 7143
	}
	router := NewRouter(st)
	addr := fmt.Sprintf(":%d", port)
	log.Printf("Fin Service started on %s", addr)
	err := http.ListenAndServe(addr, router)
	if err != nil {
		log.Fatalf("Fin Service failed: %v", err)
	}
}
