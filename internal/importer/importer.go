package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"VyaparDash/internal/config"
	"VyaparDash/internal/model"

	"github.com/google/uuid"
)

// RawRow is one row of an uploaded file or JSON batch: column name -> value.
type RawRow map[string]string

// ColumnMapping names the source column that supplies each canonical field.
// An empty value means the field is unmapped and heuristics apply.
type ColumnMapping struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Party       string `json:"party"`
	GSTRate     string `json:"gst_rate"`
	GSTType     string `json:"gst_type"`
	TDSSection  string `json:"tds_section"`
	TDSRate     string `json:"tds_rate"`
	PartyGstin  string `json:"party_gstin"`
}

// detectKeywords are the case-insensitive substrings tried when auto-detecting
// which header feeds which field. First matching header wins.
var detectKeywords = map[string][]string{
	"date":        {"date", "time"},
	"description": {"desc", "narration", "particular", "detail", "remark"},
	"amount":      {"amount", "value", "sum", "debit", "credit"},
	"type":        {"type", "dr/cr", "dr_cr", "drcr"},
	"category":    {"category", "cat"},
	"party":       {"party", "vendor", "customer", "name"},
	"gst_rate":    {"gst_rate", "gstrate", "gst rate", "gst%", "gst %"},
	"gst_type":    {"gst_type", "gsttype", "gst type"},
	"tds_section": {"tds_section", "tds section", "section"},
	"tds_rate":    {"tds_rate", "tds rate"},
	"party_gstin": {"gstin"},
}

// detectOrder keeps detection deterministic across runs. GSTIN comes before
// gst_rate so a "party_gstin" header is not claimed by the rate patterns.
var detectOrder = []string{
	"date", "description", "amount", "type", "category",
	"party_gstin", "gst_rate", "gst_type", "tds_section", "tds_rate", "party",
}

// DetectColumns maps file headers onto canonical fields by substring match.
// Headers that match nothing are ignored; fields with no matching header are
// left unmapped.
func DetectColumns(headers []string) ColumnMapping {
	var m ColumnMapping
	fields := map[string]*string{
		"date":        &m.Date,
		"description": &m.Description,
		"amount":      &m.Amount,
		"type":        &m.Type,
		"category":    &m.Category,
		"party":       &m.Party,
		"gst_rate":    &m.GSTRate,
		"gst_type":    &m.GSTType,
		"tds_section": &m.TDSSection,
		"tds_rate":    &m.TDSRate,
		"party_gstin": &m.PartyGstin,
	}
	for _, field := range detectOrder {
		dst := fields[field]
		for _, h := range headers {
			lower := strings.ToLower(strings.TrimSpace(h))
			for _, kw := range detectKeywords[field] {
				if strings.Contains(lower, kw) {
					*dst = h
					break
				}
			}
			if *dst != "" {
				break
			}
		}
	}
	return m
}

var (
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dmyDateRe   = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{4})`)
	dmy2DateRe  = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{2})`)
	amountKeep  = regexp.MustCompile(`[^0-9.\-]`)
	genericFmts = []string{
		"2 Jan 2006", "Jan 2, 2006", "2006/01/02", "02 Jan 06", "January 2, 2006",
	}
)

// ParseDate parses bank-export date strings leniently. Unparseable input
// falls back to the current date rather than rejecting the row; messy
// exports should still import.
func ParseDate(raw string) time.Time {
	s := strings.TrimSpace(raw)
	if isoDateRe.MatchString(s) {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t
		}
	}
	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if t, ok := civilDate(year, month, day); ok {
			return t
		}
	}
	if m := dmy2DateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if t, ok := civilDate(year+2000, month, day); ok {
			return t
		}
	}
	for _, layout := range genericFmts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func civilDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseAmount extracts a non-negative magnitude from an amount string,
// tolerating currency symbols, thousands separators and sign markers.
// Returns 0 when nothing numeric remains.
func ParseAmount(raw string) float64 {
	cleaned := amountKeep.ReplaceAllString(raw, "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return math.Abs(f)
}

// categoryRule maps a description pattern to a category and flow direction.
// First match wins, so more specific patterns come earlier.
type categoryRule struct {
	re       *regexp.Regexp
	category string
	txnType  model.TransactionType
}

var categoryRules = []categoryRule{
	{regexp.MustCompile(`(?i)salary|wages|payroll`), "Salaries & Wages", model.TypeExpense},
	{regexp.MustCompile(`(?i)rent|lease`), "Rent", model.TypeExpense},
	{regexp.MustCompile(`(?i)electricity|water|internet|broadband|phone|mobile|utility`), "Utilities", model.TypeExpense},
	{regexp.MustCompile(`(?i)software|subscription|saas|aws|azure|google cloud|gcp`), "Software", model.TypeExpense},
	{regexp.MustCompile(`(?i)marketing|advertis|promotion|campaign|ads`), "Marketing", model.TypeExpense},
	{regexp.MustCompile(`(?i)travel|flight|hotel|cab|uber|ola|taxi`), "Travel", model.TypeExpense},
	{regexp.MustCompile(`(?i)office|stationery|supplies|furniture`), "Office Supplies", model.TypeExpense},
	{regexp.MustCompile(`(?i)legal|accounting|audit|consultant|professional|ca fees`), "Professional Fees", model.TypeExpense},
	{regexp.MustCompile(`(?i)insurance|premium`), "Insurance", model.TypeExpense},
	{regexp.MustCompile(`(?i)bank charge|bank fee|processing fee|commission`), "Bank Charges", model.TypeExpense},
	{regexp.MustCompile(`(?i)gst|tax payment|tds payment`), "GST Payment", model.TypeExpense},
	{regexp.MustCompile(`(?i)invoice|payment received|sales|revenue|customer`), "Sales", model.TypeIncome},
	{regexp.MustCompile(`(?i)service fee|consulting|project`), "Services", model.TypeIncome},
	{regexp.MustCompile(`(?i)interest|dividend|refund`), "Other Income", model.TypeIncome},
}

// InferTypeAndCategory classifies a transaction from its description using
// the ordered keyword rule table. Unmatched descriptions default to a
// generic expense.
func InferTypeAndCategory(description string) (model.TransactionType, string) {
	for _, rule := range categoryRules {
		if rule.re.MatchString(description) {
			return rule.txnType, rule.category
		}
	}
	return model.TypeExpense, "Other Expense"
}

// Normalize converts raw rows into canonical transactions for the given
// owner. Malformed fields degrade to safe defaults and rows that resolve to
// a zero amount are dropped; no row ever causes a hard failure.
func Normalize(ownerID string, rows []RawRow, mapping ColumnMapping) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		amount := ParseAmount(row[mapping.Amount])
		if amount <= 0 {
			continue
		}

		desc := strings.TrimSpace(row[mapping.Description])
		if desc == "" {
			desc = config.NoDescription
		}
		if len(desc) > config.MaxDescriptionLen {
			desc = desc[:config.MaxDescriptionLen]
		}

		txnType, category := InferTypeAndCategory(desc)
		if mapping.Type != "" {
			switch strings.ToLower(strings.TrimSpace(row[mapping.Type])) {
			case "income", "credit", "cr":
				txnType = model.TypeIncome
			case "expense", "debit", "dr":
				txnType = model.TypeExpense
			}
		}
		if mapping.Category != "" {
			if c := strings.TrimSpace(row[mapping.Category]); c != "" {
				category = c
			}
		}

		txn := model.Transaction{
			ID:          uuid.New().String(),
			OwnerID:     ownerID,
			Date:        ParseDate(row[mapping.Date]),
			Description: desc,
			Amount:      amount,
			Type:        txnType,
			Category:    category,
		}
		if mapping.Party != "" {
			if p := strings.TrimSpace(row[mapping.Party]); p != "" {
				txn.PartyName = &p
			}
		}
		if mapping.PartyGstin != "" {
			if g := strings.TrimSpace(row[mapping.PartyGstin]); g != "" {
				txn.PartyGstin = &g
			}
		}
		applyTaxFields(&txn, row, mapping)
		out = append(out, txn)
	}
	return out
}

// applyTaxFields fills the optional GST/TDS columns when mapped. The paired
// fields stay consistent: a GST rate always gets a GST type (intra-state by
// default) and a TDS section always gets a rate (standard section rate when
// the file carries none).
func applyTaxFields(txn *model.Transaction, row RawRow, mapping ColumnMapping) {
	if mapping.GSTRate != "" {
		if rate, err := strconv.ParseFloat(strings.TrimSpace(row[mapping.GSTRate]), 64); err == nil && rate > 0 {
			txn.GSTRate = &rate
			gstType := model.GSTTypeCGSTSGST
			if mapping.GSTType != "" {
				if v := strings.ToLower(strings.TrimSpace(row[mapping.GSTType])); v == model.GSTTypeIGST {
					gstType = model.GSTTypeIGST
				}
			}
			txn.GSTType = &gstType
		}
	}
	if mapping.TDSSection != "" {
		section := strings.ToUpper(strings.TrimSpace(row[mapping.TDSSection]))
		if section != "" {
			rate := 0.0
			if mapping.TDSRate != "" {
				rate, _ = strconv.ParseFloat(strings.TrimSpace(row[mapping.TDSRate]), 64)
			}
			if rate == 0 {
				if info, ok := model.TDSSections[section]; ok {
					rate = info.Rate
				}
			}
			if rate > 0 {
				txn.TDSSection = &section
				txn.TDSRate = &rate
			}
		}
	}
}

// RowsFromRecords pairs a header row with data rows into RawRows.
func RowsFromRecords(header []string, records [][]string) []RawRow {
	rows := make([]RawRow, 0, len(records))
	for _, rec := range records {
		row := make(RawRow, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
