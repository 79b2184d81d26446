package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// GST type values. Intra-state tax splits into CGST+SGST, inter-state is IGST.
const (
	GSTTypeCGSTSGST = "cgst_sgst"
	GSTTypeIGST     = "igst"
)

// GSTRates are the slabs recognised under Indian GST.
var GSTRates = []float64{0, 5, 12, 18, 28}

// Transaction is a single financial event. Created by import or seeding,
// never updated in place, deleted individually by id.
type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	GSTRate     *float64        `json:"gst_rate,omitempty"`
	GSTType     *string         `json:"gst_type,omitempty"`
	TDSSection  *string         `json:"tds_section,omitempty"`
	TDSRate     *float64        `json:"tds_rate,omitempty"`
	PartyName   *string         `json:"party_name,omitempty"`
	PartyGstin  *string         `json:"party_gstin,omitempty"`
}

// HasGST reports whether the transaction carries a non-zero GST rate.
func (t Transaction) HasGST() bool {
	return t.GSTRate != nil && *t.GSTRate != 0
}

// GSTSummary is a derived monthly aggregate keyed by period (YYYY-MM). It is
// a pure function of the GST-bearing transactions in that period and is
// rebuilt wholesale after every transaction mutation. Months with no GST
// activity keep no row.
type GSTSummary struct {
	ID           string  `json:"id,omitempty"`
	OwnerID      string  `json:"owner_id"`
	Period       string  `json:"period"`
	OutputCGST   float64 `json:"output_cgst"`
	OutputSGST   float64 `json:"output_sgst"`
	OutputIGST   float64 `json:"output_igst"`
	InputCGST    float64 `json:"input_cgst"`
	InputSGST    float64 `json:"input_sgst"`
	InputIGST    float64 `json:"input_igst"`
	NetLiability float64 `json:"net_liability"`
}

// TotalOutput is the GST collected on sales for the period.
func (s GSTSummary) TotalOutput() float64 {
	return s.OutputCGST + s.OutputSGST + s.OutputIGST
}

// TotalInput is the creditable GST paid on purchases for the period.
func (s GSTSummary) TotalInput() float64 {
	return s.InputCGST + s.InputSGST + s.InputIGST
}

// Category is a curated income/expense label. Any free-form category string
// is accepted on transactions; these are the defaults offered to the UI.
type Category struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"is_default"`
}

// TDSSectionInfo describes a withholding section of the Income Tax Act.
type TDSSectionInfo struct {
	Name string
	Rate float64
}

// TDSSections maps the section codes commonly used by small businesses to
// their standard withholding rates.
var TDSSections = map[string]TDSSectionInfo{
	"194A": {Name: "Interest", Rate: 10},
	"194C": {Name: "Contractor", Rate: 1},
	"194H": {Name: "Commission", Rate: 5},
	"194I": {Name: "Rent", Rate: 10},
	"194J": {Name: "Professional Fees", Rate: 10},
	"194Q": {Name: "Purchase of Goods", Rate: 0.1},
}

// Period formats a date as the YYYY-MM period key used by GST summaries.
func Period(t time.Time) string {
	return t.Format("2006-01")
}
