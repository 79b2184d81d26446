package taxengine

import (
	"fmt"
	"time"

	"VyaparDash/internal/config"
)

// FilingDates carries the upcoming GST return due dates.
type FilingDates struct {
	GSTR3BDue time.Time `json:"gstr3b_due"`
	GSTR1Due  time.Time `json:"gstr1_due"`
}

// NextFilingDates returns the GSTR-3B (20th of next month) and GSTR-1
// (11th of next month) due dates for the period containing now. Actual due
// dates can shift with turnover and CBIC notifications; these are the
// standard monthly-filer dates.
func NextFilingDates(now time.Time) FilingDates {
	return FilingDates{
		GSTR3BDue: time.Date(now.Year(), now.Month()+1, config.GSTR3BDueDay, 0, 0, 0, 0, now.Location()),
		GSTR1Due:  time.Date(now.Year(), now.Month()+1, config.GSTR1DueDay, 0, 0, 0, 0, now.Location()),
	}
}

// FinancialYear returns the Indian financial year (April-March) containing
// now, with its display label.
func FinancialYear(now time.Time) (start, end time.Time, label string) {
	startYear := now.Year()
	if now.Month() < time.April {
		startYear--
	}
	start = time.Date(startYear, time.April, 1, 0, 0, 0, 0, now.Location())
	end = time.Date(startYear+1, time.March, 31, 0, 0, 0, 0, now.Location())
	label = fmt.Sprintf("FY %d-%02d", startYear, (startYear+1)%100)
	return start, end, label
}
