package domain

import "time"

type FilingProfile string

const (
	FilingProfileIndividual FilingProfile = "individual"
	FilingProfileSME        FilingProfile = "sme"
)

func (p FilingProfile) Valid() bool {
	return p == FilingProfileIndividual || p == FilingProfileSME
}

// FilingDeadline is one entry of the static due-date table shown on the
// filing-status dashboard and scanned by the reminder job.
type FilingDeadline struct {
	ReturnType string
	DueDate    time.Time
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var individualDeadlines = []FilingDeadline{
	{ReturnType: "ITR Filing", DueDate: date(2025, time.July, 31)},
	{ReturnType: "TDS Return", DueDate: date(2026, time.January, 31)},
	{ReturnType: "Form 26AS Review", DueDate: date(2026, time.March, 10)},
	{ReturnType: "Advance Tax Q4", DueDate: date(2026, time.March, 15)},
}

var smeDeadlines = []FilingDeadline{
	{ReturnType: "ITR Filing", DueDate: date(2025, time.October, 31)},
	{ReturnType: "TDS Return", DueDate: date(2026, time.January, 31)},
	{ReturnType: "GST Return (GSTR-1)", DueDate: date(2026, time.February, 11)},
	{ReturnType: "Advance Tax Q4", DueDate: date(2026, time.March, 15)},
	{ReturnType: "GST Return (GSTR-3B)", DueDate: date(2026, time.March, 20)},
}

// FilingDeadlines returns the due-date table for a profile, ordered by due
// date. The returned slice is a copy; callers may mutate it.
func FilingDeadlines(profile FilingProfile) []FilingDeadline {
	var src []FilingDeadline
	switch profile {
	case FilingProfileSME:
		src = smeDeadlines
	default:
		src = individualDeadlines
	}
	out := make([]FilingDeadline, len(src))
	copy(out, src)
	return out
}

// UpcomingDeadlines returns the deadlines falling inside [now, now+leadDays],
// the window the reminder job warns about. Past deadlines are excluded.
func UpcomingDeadlines(profile FilingProfile, now time.Time, leadDays int) []FilingDeadline {
	horizon := now.AddDate(0, 0, leadDays)
	var out []FilingDeadline
	for _, d := range FilingDeadlines(profile) {
		if d.DueDate.Before(now) || d.DueDate.After(horizon) {
			continue
		}
		out = append(out, d)
	}
	return out
}
