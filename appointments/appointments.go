package appointments

import (
	"fmt"
	"strings"
	"time"

	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/memos"
	"github.com/decodahealth/patient-record/record"
)

var (
	ErrEventNotFound = fmt.Errorf("%w: event not found", errors.NotFound)
	ErrNotModifiable = fmt.Errorf("%w: event can no longer be modified", errors.Conflict)
	ErrEmptyReason   = fmt.Errorf("%w: cancellation reason is empty", errors.BadRequest)
)

const timeFormat = "Jan 2, 2006 3:04 PM"

// Reschedule moves an event to a new start time, keeping its duration. The
// status is forced back to CONFIRMED regardless of a prior reschedule. Only
// future, non-terminal events may be moved.
func Reschedule(rec record.PatientRecord, eventId string, newStart time.Time, actor record.PersonRef, now time.Time) (record.PatientRecord, error) {
	event, ok := rec.Event(eventId)
	if !ok {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrEventNotFound, eventId)
	}
	if !event.CanModify(now) {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrNotModifiable, eventId)
	}

	updated := rec.Clone()
	for i := range updated.Events {
		e := &updated.Events[i]
		if e.Id != eventId {
			continue
		}

		oldStart := e.Start
		e.Start = newStart
		e.End = newStart.Add(event.Duration())
		e.Status = record.EventStatusConfirmed

		note := fmt.Sprintf("Appointment rescheduled: %s moved from %s to %s.",
			e.Title, oldStart.Format(timeFormat), newStart.Format(timeFormat))
		updated.Memos = memos.Prepend(updated.Memos, memos.New(updated.PatientRef(), actor, note, now))
		break
	}

	return updated, nil
}

// Cancel marks an event CANCELLED. The end time is left untouched so the
// original duration stays visible in the history. A non-blank reason is
// required and is recorded in the audit memo together with the original time.
func Cancel(rec record.PatientRecord, eventId string, reason string, actor record.PersonRef, now time.Time) (record.PatientRecord, error) {
	event, ok := rec.Event(eventId)
	if !ok {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrEventNotFound, eventId)
	}
	if !event.CanModify(now) {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrNotModifiable, eventId)
	}
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return record.PatientRecord{}, ErrEmptyReason
	}

	updated := rec.Clone()
	for i := range updated.Events {
		e := &updated.Events[i]
		if e.Id != eventId {
			continue
		}

		e.Status = record.EventStatusCancelled

		note := fmt.Sprintf("Appointment cancelled: %s, originally scheduled for %s. Reason: %s",
			e.Title, e.Start.Format(timeFormat), trimmed)
		updated.Memos = memos.Prepend(updated.Memos, memos.New(updated.PatientRef(), actor, note, now))
		break
	}

	return updated, nil
}
