// Package seed generates twelve months of realistic demo data for an owner:
// Indian counterparties with GSTINs, a 40/60 income/expense mix, GST on most
// B2B rows and TDS withholding where the Income Tax Act requires it.
package seed

import (
	"math/rand"
	"time"

	"VyaparDash/internal/model"

	"github.com/google/uuid"
)

type party struct {
	name  string
	gstin string
}

var vendors = []party{
	{"Tata Steel Ltd", "27AAACT2727Q1ZV"},
	{"Reliance Industries", "27AABCR1234A1Z5"},
	{"Infosys Technologies", "29AABCI1234F1ZB"},
	{"Wipro Ltd", "29AABCW1234L1ZN"},
	{"ABC Suppliers", "27AABCS5678K1Z3"},
	{"XYZ Services", "27AABCX9012M1Z7"},
	{"Mumbai Electricals", "27AABCM3456P1Z1"},
	{"Delhi Transport Co", "07AABCD7890T1ZY"},
	{"Bangalore IT Solutions", "29AABCB2345I1ZW"},
	{"Chennai Logistics", "33AABCC6789L1ZQ"},
}

var customers = []party{
	{"Hindustan Unilever", "27AABCH1234U1ZB"},
	{"Mahindra & Mahindra", "27AABCM4567M1ZN"},
	{"Godrej Industries", "27AABCG8901G1ZK"},
	{"Larsen & Toubro", "27AABCL2345L1ZJ"},
	{"Asian Paints", "27AABCA6789A1ZH"},
}

// DefaultCategories is the curated category set offered to every business.
var DefaultCategories = []model.Category{
	{Name: "Sales", Type: model.TypeIncome, Description: "Revenue from sale of goods", IsDefault: true},
	{Name: "Services", Type: model.TypeIncome, Description: "Revenue from services rendered", IsDefault: true},
	{Name: "Interest Income", Type: model.TypeIncome, Description: "Interest earned on deposits/investments", IsDefault: true},
	{Name: "Other Income", Type: model.TypeIncome, Description: "Miscellaneous income", IsDefault: true},
	{Name: "Salaries & Wages", Type: model.TypeExpense, Description: "Employee salaries and wages", IsDefault: true},
	{Name: "Rent", Type: model.TypeExpense, Description: "Office/warehouse rent", IsDefault: true},
	{Name: "Professional Fees", Type: model.TypeExpense, Description: "CA, lawyer, consultant fees", IsDefault: true},
	{Name: "Raw Materials", Type: model.TypeExpense, Description: "Purchase of raw materials", IsDefault: true},
	{Name: "Utilities", Type: model.TypeExpense, Description: "Electricity, water, internet", IsDefault: true},
	{Name: "Marketing", Type: model.TypeExpense, Description: "Advertising and marketing expenses", IsDefault: true},
	{Name: "Travel", Type: model.TypeExpense, Description: "Business travel expenses", IsDefault: true},
	{Name: "Office Supplies", Type: model.TypeExpense, Description: "Stationery, consumables", IsDefault: true},
	{Name: "Software", Type: model.TypeExpense, Description: "Software subscriptions and licenses", IsDefault: true},
	{Name: "Other Expenses", Type: model.TypeExpense, Description: "Miscellaneous expenses", IsDefault: true},
}

type expenseProfile struct {
	category   string
	minAmount  int
	maxAmount  int
	tdsSection string
	tdsRate    float64
}

var expenseProfiles = []expenseProfile{
	{"Salaries & Wages", 30000, 200000, "194J", 10},
	{"Rent", 50000, 150000, "194I", 10},
	{"Professional Fees", 10000, 100000, "194J", 10},
	{"Raw Materials", 20000, 300000, "", 0},
	{"Utilities", 5000, 30000, "", 0},
	{"Marketing", 10000, 80000, "", 0},
	{"Travel", 5000, 50000, "", 0},
	{"Office Supplies", 2000, 20000, "", 0},
	{"Software", 5000, 50000, "", 0},
}

var gstRates = []float64{5, 12, 18}

// Transactions generates 15-25 transactions per month for the twelve months
// ending at now, for the given owner. The rng is injected so tests can seed
// it deterministically.
func Transactions(ownerID string, now time.Time, rng *rand.Rand) []model.Transaction {
	var out []model.Transaction
	start := time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, time.UTC)

	for monthOffset := 0; monthOffset < 12; monthOffset++ {
		monthStart := start.AddDate(0, monthOffset, 0)
		daysInMonth := monthStart.AddDate(0, 1, -1).Day()
		count := 15 + rng.Intn(11)

		for i := 0; i < count; i++ {
			day := 1 + rng.Intn(daysInMonth)
			date := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)

			if rng.Float64() < 0.4 {
				out = append(out, incomeTxn(ownerID, date, rng))
			} else {
				out = append(out, expenseTxn(ownerID, date, rng))
			}
		}
	}
	return out
}

func incomeTxn(ownerID string, date time.Time, rng *rand.Rand) model.Transaction {
	customer := customers[rng.Intn(len(customers))]
	category := "Sales"
	if rng.Float64() >= 0.8 {
		category = "Services"
	}
	txn := model.Transaction{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Date:        date,
		Description: category + " to " + customer.name,
		Amount:      float64(50000 + rng.Intn(500000)),
		Type:        model.TypeIncome,
		Category:    category,
		PartyName:   strPtr(customer.name),
		PartyGstin:  strPtr(customer.gstin),
	}
	if rng.Float64() < 0.9 {
		attachGST(&txn, rng)
	}
	return txn
}

func expenseTxn(ownerID string, date time.Time, rng *rand.Rand) model.Transaction {
	profile := expenseProfiles[rng.Intn(len(expenseProfiles))]
	vendor := vendors[rng.Intn(len(vendors))]
	amount := float64(profile.minAmount + rng.Intn(profile.maxAmount-profile.minAmount))

	txn := model.Transaction{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Date:        date,
		Description: profile.category + " - " + vendor.name,
		Amount:      amount,
		Type:        model.TypeExpense,
		Category:    profile.category,
		PartyName:   strPtr(vendor.name),
		PartyGstin:  strPtr(vendor.gstin),
	}
	if rng.Float64() < 0.85 {
		attachGST(&txn, rng)
	}
	// TDS applies above the section threshold only.
	if profile.tdsSection != "" && amount > 30000 {
		txn.TDSSection = strPtr(profile.tdsSection)
		rate := profile.tdsRate
		txn.TDSRate = &rate
	}
	return txn
}

func attachGST(txn *model.Transaction, rng *rand.Rand) {
	rate := gstRates[rng.Intn(len(gstRates))]
	gstType := model.GSTTypeCGSTSGST
	if rng.Float64() >= 0.7 {
		gstType = model.GSTTypeIGST
	}
	txn.GSTRate = &rate
	txn.GSTType = &gstType
}

func strPtr(s string) *string { return &s }
