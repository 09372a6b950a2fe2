package report

import (
	"fmt"
	"regexp"
	"time"
)

// Payment-excuse notes carry the tenant's self-reported payment date as a
// marker appended to the free text. The marker is the only encoding of the
// promise, so both sides of it live here: if the date ever moves to its
// own column, this file is the whole migration surface.
const (
	promiseMarker     = " → Promised payment date: "
	promiseDateLayout = "2006-01-02"
)

var promiseRE = regexp.MustCompile(`Promised payment date:\s*(\d{4}-\d{2}-\d{2})`)

// AppendPromise returns text with the canonical promise marker appended.
func AppendPromise(text string, promised time.Time) string {
	return text + promiseMarker + promised.Format(promiseDateLayout)
}

// ExtractPromiseDate scans note text for the promise marker and parses the
// date. Returns false when the note carries no tracked promise.
func ExtractPromiseDate(text string) (time.Time, bool) {
	m := promiseRE.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse(promiseDateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// PromiseStatus classifies a promised date relative to today.
type PromiseStatus struct {
	DaysDiff     int    `json:"days_diff"`
	Label        string `json:"label"`
	HighPriority bool   `json:"high_priority"`
}

// ClassifyPromise compares the promised date against today, counting whole
// calendar days. Promises due within a week are flagged high priority.
func ClassifyPromise(promised, today time.Time) PromiseStatus {
	days := int(midnight(promised).Sub(midnight(today)).Hours() / 24)
	st := PromiseStatus{DaysDiff: days}
	switch {
	case days < 0:
		st.Label = "Overdue"
	case days == 0:
		st.Label = "Due Today"
	default:
		st.Label = fmt.Sprintf("In %d days", days)
		st.HighPriority = days <= 7
	}
	return st
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
