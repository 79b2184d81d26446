package constants

// Common error messages
const (
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrInvalidRequestBody = "Invalid request body"
	ErrNoTransactions     = "No transactions provided"
	ErrTransactionID      = "Transaction ID required"
	ErrMessageRequired    = "Message is required"
	ErrMethodNotAllowed   = "Method Not Allowed"

	ErrFetchTransactions  = "Failed to fetch transactions"
	ErrCreateTransactions = "Failed to create transactions"
	ErrDeleteTransaction  = "Failed to delete transaction"
	ErrFetchDashboard     = "Failed to fetch dashboard data"
	ErrFetchGST           = "Failed to fetch GST data"
	ErrChatFailed         = "Failed to process message"
	ErrFetchCategories    = "Failed to fetch categories"
	ErrSeedFailed         = "Failed to seed demo data"
	ErrRecomputeFailed    = "Failed to update GST summaries"
)

// File upload errors
const (
	ErrFileUploadFailed  = "File upload failed. Please check the file format and try again"
	ErrInvalidFileFormat = "Invalid file format. Please upload a CSV, XLSX or XLS file"
	ErrEmptyFile         = "Uploaded file is empty"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DateFormatAlt  = "02-01-2006"
)
