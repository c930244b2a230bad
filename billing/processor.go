package billing

import (
	"fmt"
	"time"

	"github.com/decodahealth/patient-record/record"
)

// ProcessScheduledPayments settles every charge whose scheduled payment date
// (truncated to the day) is due, whose auto-pay flag is set and which still
// carries an outstanding balance. Settling appends a payment, reduces the
// outstanding balance (floored at zero), re-derives the status, notes the
// auto-payment in the charge comment and clears the scheduling fields.
//
// Clearing the scheduling fields makes a settled charge ineligible on the
// next run, so the processor is idempotent for a fixed now. The record's
// LastProcessed timestamp is bumped only when at least one charge changed.
func ProcessScheduledPayments(rec record.PatientRecord, now time.Time) (record.PatientRecord, bool) {
	today := truncateToDay(now)

	updated := rec.Clone()
	changed := false
	for i := range updated.Charges {
		c := &updated.Charges[i]
		if !c.HasScheduledPayment() || !c.HasOutstandingBalance() {
			continue
		}
		due := truncateToDay(*c.ScheduledPaymentDate)
		if due.After(today) || !c.AutoPay() {
			continue
		}

		amount := c.TotalOutstanding
		if c.ScheduledPaymentAmount != nil && *c.ScheduledPaymentAmount > 0 {
			amount = *c.ScheduledPaymentAmount
		}

		c.Payments = append(c.Payments, record.Payment{
			Id:            record.NewAutoPaymentId(),
			Amount:        amount,
			CreatedDate:   now,
			PaymentMethod: c.ScheduledPaymentMethod,
			PaymentMedium: record.PaymentMediumScheduledAutoPay,
			Refunds:       []record.Refund{},
		})

		c.TotalOutstanding = max(0, c.TotalOutstanding-amount)
		c.Status = record.DeriveChargeStatus(c.TotalOutstanding, c.Total)
		c.Comment = appendAutoPayNote(c.Comment, due)

		c.ScheduledPaymentDate = nil
		c.ScheduledPaymentAmount = nil
		c.ScheduledPaymentMethod = nil
		c.AutoPayEnabled = nil

		changed = true
	}

	if !changed {
		return rec, false
	}

	processedAt := now
	updated.LastProcessed = &processedAt
	return updated, true
}

func appendAutoPayNote(comment *string, due time.Time) *string {
	note := fmt.Sprintf("[Auto-payment processed on %s]", due.Format(noteDateFormat))
	if comment == nil || *comment == "" {
		return &note
	}
	combined := fmt.Sprintf("%s %s", *comment, note)
	return &combined
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
