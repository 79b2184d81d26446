package config

const (
	DefaultTimeZone = "Asia/Kolkata"
	BatchSize       = 1000

	// Recompute Job Constants
	DefaultRecomputeSchedule = "30 1 * * *" // 1:30 AM IST, after bank feeds settle
	RecomputeBatchSize       = 500

	// Fallback owner for single-tenant demo deployments. Overridden by the
	// DEFAULT_OWNER_ID env var; handlers also accept an explicit owner_id.
	DefaultOwnerID = "00000000-0000-0000-0000-000000000001"

	// Import Constants
	MaxDescriptionLen = 500
	NoDescription     = "No description"

	// Filing day-of-month for monthly GST returns
	GSTR3BDueDay = 20
	GSTR1DueDay  = 11
)
