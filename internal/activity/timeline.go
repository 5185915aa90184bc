package activity

import (
	"fmt"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Group is the entries of a single day.
type Group struct {
	Label   string
	Date    dateutil.Date
	Entries []Entry
}

// Timeline groups entries by the local calendar day they were recorded on.
// Groups and the entries inside them keep the input order, which is newest
// first for every Source.
func Timeline(entries []Entry, today dateutil.Date) []Group {
	var groups []Group
	for _, e := range entries {
		d := dateutil.FromTime(e.CreatedAt.Local())
		if n := len(groups); n > 0 && groups[n-1].Date == d {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, Group{
			Label:   DayLabel(d, today),
			Date:    d,
			Entries: []Entry{e},
		})
	}
	return groups
}

// DayLabel returns "Today", "Yesterday", or a short date like "Mon, Jan 2".
func DayLabel(d, today dateutil.Date) string {
	switch today.DaysSince(d) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	}
	return d.Format("Mon, Jan 2")
}

// Describe renders a one-line description of an entry.
func Describe(e Entry) string {
	var what string
	switch e.Action {
	case ActionCreated:
		what = fmt.Sprintf("created %q", e.Summary)
	case ActionUpdated:
		what = fmt.Sprintf("updated %q", e.Summary)
	case ActionStatusChanged:
		if e.Detail != "" {
			what = fmt.Sprintf("moved %q to %s", e.Summary, e.Detail)
		} else {
			what = fmt.Sprintf("changed the status of %q", e.Summary)
		}
	case ActionDeleted:
		what = fmt.Sprintf("deleted %q", e.Summary)
	default:
		what = fmt.Sprintf("%s %q", e.Action, e.Summary)
	}

	if e.Actor == "" {
		return what
	}
	return e.Actor + " " + what
}
