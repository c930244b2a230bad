package view

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/decodahealth/patient-record/record"
)

type Section string

const (
	SectionAlerts       Section = "alerts"
	SectionAISummary    Section = "aiSummary"
	SectionBilling      Section = "billing"
	SectionAppointments Section = "appointments"
	SectionNotes        Section = "notes"
)

const (
	upcomingWindow   = 7 * 24 * time.Hour
	recentNoteWindow = 24 * time.Hour
)

func Sections() []Section {
	return []Section{SectionAlerts, SectionAISummary, SectionBilling, SectionAppointments, SectionNotes}
}

// SectionState is what the presentation layer needs to render one collapsible
// section of the dashboard.
type SectionState struct {
	ShouldAutoExpand  bool `json:"shouldAutoExpand"`
	HasNotification   bool `json:"hasNotification"`
	NotificationCount int  `json:"notificationCount"`
	Expanded          bool `json:"expanded"`
}

type State map[Section]SectionState

// Overlay holds session-scoped presentation state that is never persisted
// into the aggregate: dismissed alert ids, pinned expand/collapse choices and
// whether the summary was viewed. Like the aggregate it is copy-on-write.
type Overlay struct {
	Dismissed     mapset.Set[string]
	Pinned        map[Section]bool
	SummaryViewed bool
}

func NewOverlay() Overlay {
	return Overlay{
		Dismissed: mapset.NewSet[string](),
		Pinned:    map[Section]bool{},
	}
}

func (o Overlay) clone() Overlay {
	pinned := make(map[Section]bool, len(o.Pinned))
	for k, v := range o.Pinned {
		pinned[k] = v
	}
	return Overlay{
		Dismissed:     o.Dismissed.Clone(),
		Pinned:        pinned,
		SummaryViewed: o.SummaryViewed,
	}
}

// Dismiss hides an alert for the rest of the session. Dismissing an already
// dismissed id is a no-op, so the operation is idempotent.
func (o Overlay) Dismiss(alertId string) Overlay {
	updated := o.clone()
	updated.Dismissed.Add(alertId)
	return updated
}

// Toggle flips a section's expanded state and pins the choice for the rest of
// the session, overriding the auto-expand default from then on. Expanding the
// AI summary also marks the summary as viewed.
func (o Overlay) Toggle(section Section, currentlyExpanded bool) Overlay {
	updated := o.clone()
	expanded := !currentlyExpanded
	updated.Pinned[section] = expanded
	if section == SectionAISummary && expanded {
		updated.SummaryViewed = true
	}
	return updated
}

func (o Overlay) MarkSummaryViewed() Overlay {
	updated := o.clone()
	updated.SummaryViewed = true
	return updated
}

// ActiveAlerts is the aggregate's alerts minus the session's dismissed ids.
func ActiveAlerts(rec record.PatientRecord, overlay Overlay) []record.Alert {
	active := make([]record.Alert, 0, len(rec.Alerts))
	for _, alert := range rec.Alerts {
		if overlay.Dismissed != nil && overlay.Dismissed.Contains(alert.Id) {
			continue
		}
		active = append(active, alert)
	}
	return active
}

// Calculate derives the per-section flags from the aggregate and the session
// overlay. It is a pure function; it re-runs on every aggregate or overlay
// change.
func Calculate(rec record.PatientRecord, overlay Overlay, now time.Time) State {
	state := State{}
	for _, section := range Sections() {
		s := sectionState(rec, overlay, section, now)
		s.Expanded = s.ShouldAutoExpand
		if pinned, ok := overlay.Pinned[section]; ok {
			s.Expanded = pinned
		}
		state[section] = s
	}
	return state
}

func sectionState(rec record.PatientRecord, overlay Overlay, section Section, now time.Time) SectionState {
	switch section {
	case SectionAlerts:
		active := ActiveAlerts(rec, overlay)
		count := 0
		for _, alert := range active {
			if alert.ActionRequired {
				count++
			}
		}
		return SectionState{
			ShouldAutoExpand:  len(active) > 0,
			HasNotification:   count > 0,
			NotificationCount: count,
		}
	case SectionAISummary:
		return SectionState{
			ShouldAutoExpand: false,
			HasNotification:  !overlay.SummaryViewed,
		}
	case SectionBilling:
		count := 0
		for _, c := range rec.Charges {
			if c.HasOutstandingBalance() {
				count++
			}
		}
		return SectionState{
			ShouldAutoExpand:  rec.TotalOutstanding() > 0,
			HasNotification:   count > 0,
			NotificationCount: count,
		}
	case SectionAppointments:
		count := 0
		for _, e := range rec.Events {
			if e.IsUpcoming(now, upcomingWindow) {
				count++
			}
		}
		return SectionState{
			ShouldAutoExpand:  count > 0,
			HasNotification:   count > 0,
			NotificationCount: count,
		}
	case SectionNotes:
		count := 0
		for _, n := range rec.DoctorsNotes {
			if now.Sub(n.CreatedDate) <= recentNoteWindow && !n.CreatedDate.After(now) {
				count++
			}
		}
		return SectionState{
			ShouldAutoExpand:  count > 0,
			HasNotification:   count > 0,
			NotificationCount: count,
		}
	}
	return SectionState{}
}
