package domain

import "time"

// QuotaWindow caps provider calls over one calendar month. A fresh window
// (zero counter) appears the first time the current month differs from the
// stored key; the counter is never decremented mid-window.
type QuotaWindow struct {
	MonthKey     string
	RequestsMade int
	MonthlyLimit int
}

func (w QuotaWindow) Remaining() int {
	if r := w.MonthlyLimit - w.RequestsMade; r > 0 {
		return r
	}
	return 0
}

// MonthKey renders the calendar month of t as "YYYY-MM" in the given location.
func MonthKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01")
}
