package appointments_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/decodahealth/patient-record/appointments"
	"github.com/decodahealth/patient-record/record"
	recordTest "github.com/decodahealth/patient-record/record/test"
)

var _ = Describe("Reschedule", func() {
	var now time.Time
	var rec record.PatientRecord
	var eventId string
	var actor record.PersonRef

	BeforeEach(func() {
		now = time.Now()
		rec = recordTest.RandomRecord(now)
		eventId = rec.Events[0].Id
		actor = recordTest.RandomPersonRef()
	})

	It("moves the event and preserves its duration", func() {
		duration := rec.Events[0].Duration()
		newStart := rec.Events[0].Start.AddDate(0, 0, 2)

		updated, err := appointments.Reschedule(rec, eventId, newStart, actor, now)
		Expect(err).ToNot(HaveOccurred())

		event := updated.Events[0]
		Expect(event.Start).To(BeTemporally("==", newStart))
		Expect(event.End.Sub(event.Start)).To(Equal(duration))
	})

	It("forces the status back to CONFIRMED", func() {
		rec.Events[0].Status = record.EventStatusRescheduled
		newStart := rec.Events[0].Start.AddDate(0, 0, 2)

		updated, err := appointments.Reschedule(rec, eventId, newStart, actor, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.Events[0].Status).To(Equal(record.EventStatusConfirmed))
	})

	It("prepends an audit memo with the old and new time", func() {
		newStart := rec.Events[0].Start.AddDate(0, 0, 2)

		updated, err := appointments.Reschedule(rec, eventId, newStart, actor, now)
		Expect(err).ToNot(HaveOccurred())

		Expect(updated.Memos).To(HaveLen(1))
		Expect(updated.Memos[0].Note).To(ContainSubstring("rescheduled"))
		Expect(updated.Memos[0].Creator).To(Equal(actor))
	})

	It("rejects an unknown event", func() {
		_, err := appointments.Reschedule(rec, "evt_missing", now.AddDate(0, 0, 2), actor, now)
		Expect(err).To(MatchError(appointments.ErrEventNotFound))
	})

	It("rejects a completed event", func() {
		rec.Events[0].Status = record.EventStatusCompleted
		_, err := appointments.Reschedule(rec, eventId, now.AddDate(0, 0, 2), actor, now)
		Expect(err).To(MatchError(appointments.ErrNotModifiable))
	})

	It("rejects an event that already started", func() {
		rec.Events[0].Start = now.Add(-time.Hour)
		_, err := appointments.Reschedule(rec, eventId, now.AddDate(0, 0, 2), actor, now)
		Expect(err).To(MatchError(appointments.ErrNotModifiable))
	})

	It("leaves the input record untouched", func() {
		original := rec.Events[0].Start
		_, err := appointments.Reschedule(rec, eventId, original.AddDate(0, 0, 2), actor, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.Events[0].Start).To(BeTemporally("==", original))
	})
})

var _ = Describe("Cancel", func() {
	var now time.Time
	var rec record.PatientRecord
	var eventId string
	var actor record.PersonRef

	BeforeEach(func() {
		now = time.Now()
		rec = recordTest.RandomRecord(now)
		eventId = rec.Events[0].Id
		actor = recordTest.RandomPersonRef()
	})

	It("marks the event cancelled and keeps the end time", func() {
		end := rec.Events[0].End

		updated, err := appointments.Cancel(rec, eventId, "patient request", actor, now)
		Expect(err).ToNot(HaveOccurred())

		event := updated.Events[0]
		Expect(event.Status).To(Equal(record.EventStatusCancelled))
		Expect(event.End).To(BeTemporally("==", end))
	})

	It("prepends an audit memo with the reason", func() {
		updated, err := appointments.Cancel(rec, eventId, "patient request", actor, now)
		Expect(err).ToNot(HaveOccurred())

		Expect(updated.Memos).To(HaveLen(1))
		Expect(updated.Memos[0].Note).To(ContainSubstring("patient request"))
	})

	It("rejects a blank reason", func() {
		_, err := appointments.Cancel(rec, eventId, "   ", actor, now)
		Expect(err).To(MatchError(appointments.ErrEmptyReason))
	})

	It("rejects a cancelled event", func() {
		rec.Events[0].Status = record.EventStatusCancelled
		_, err := appointments.Cancel(rec, eventId, "reason", actor, now)
		Expect(err).To(MatchError(appointments.ErrNotModifiable))
	})

	It("rejects an unknown event", func() {
		_, err := appointments.Cancel(rec, "evt_missing", "reason", actor, now)
		Expect(err).To(MatchError(appointments.ErrEventNotFound))
	})
})
