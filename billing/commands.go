package billing

import (
	"fmt"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/memos"
	"github.com/decodahealth/patient-record/record"
)

var (
	ErrInvalidSelection = fmt.Errorf("%w: invalid charge selection", errors.ConstraintViolation)
	ErrInvalidSchedule  = fmt.Errorf("%w: invalid payment schedule", errors.BadRequest)
)

const (
	noteDateFormat     = "Jan 2, 2006"
	noteDateTimeFormat = "Jan 2, 2006 3:04 PM"

	scheduleDateLayout = "2006-01-02"
	scheduleTimeLayout = "15:04"
)

type SchedulePaymentInput struct {
	ChargeIds       []string
	Date            string // scheduleDateLayout
	Time            string // scheduleTimeLayout
	PaymentMethodId string // empty selects the default method
	AutoPayEnabled  bool

	// Optional per-charge amount overrides. An override is honored only when
	// it is positive and does not exceed the charge's outstanding balance.
	Amounts map[string]float64

	Actor record.PersonRef
}

// SchedulePayment annotates the selected charges with a future settlement
// date, amount and method. Every selected charge must carry an outstanding
// balance and must not already have a pending schedule. One audit memo
// summarizing the whole schedule is prepended.
func SchedulePayment(rec record.PatientRecord, input SchedulePaymentInput, now time.Time) (record.PatientRecord, error) {
	if len(input.ChargeIds) == 0 {
		return record.PatientRecord{}, fmt.Errorf("%w: no charges selected", ErrInvalidSelection)
	}

	when, err := combineDateTime(input.Date, input.Time)
	if err != nil {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrInvalidSchedule, err)
	}

	method, err := resolvePaymentMethod(rec, input.PaymentMethodId)
	if err != nil {
		return record.PatientRecord{}, err
	}

	for _, id := range input.ChargeIds {
		charge, ok := rec.Charge(id)
		if !ok {
			return record.PatientRecord{}, fmt.Errorf("%w: charge %s does not exist", ErrInvalidSelection, id)
		}
		if !charge.HasOutstandingBalance() {
			return record.PatientRecord{}, fmt.Errorf("%w: charge %s has no outstanding balance", ErrInvalidSelection, id)
		}
		if charge.HasScheduledPayment() {
			return record.PatientRecord{}, fmt.Errorf("%w: charge %s already has a scheduled payment", ErrInvalidSelection, id)
		}
	}

	selected := mapset.NewSet(input.ChargeIds...)
	updated := rec.Clone()

	var total float64
	var descriptions []string
	for i := range updated.Charges {
		c := &updated.Charges[i]
		if !selected.Contains(c.Id) {
			continue
		}

		amount := c.TotalOutstanding
		if override, ok := input.Amounts[c.Id]; ok && override > 0 && override <= c.TotalOutstanding {
			amount = override
		}

		scheduledAt := when
		scheduledAmount := amount
		scheduledMethod := method
		autoPay := input.AutoPayEnabled
		c.ScheduledPaymentDate = &scheduledAt
		c.ScheduledPaymentAmount = &scheduledAmount
		c.ScheduledPaymentMethod = &scheduledMethod
		c.AutoPayEnabled = &autoPay
		c.Comment = record.AppendComment(c.Comment, fmt.Sprintf("Scheduled payment: %s", when.Format(noteDateTimeFormat)))

		total += amount
		descriptions = append(descriptions, c.Description)
	}

	autoPayState := "Disabled"
	if input.AutoPayEnabled {
		autoPayState = "Enabled"
	}
	note := fmt.Sprintf("Scheduled payment setup: %d %s (%s) for %s. Total amount: $%.2f. Auto-pay: %s.",
		len(input.ChargeIds), pluralize("charge", len(input.ChargeIds)), strings.Join(descriptions, ", "),
		when.Format(noteDateTimeFormat), total, autoPayState)
	updated.Memos = memos.Prepend(updated.Memos, memos.New(updated.PatientRef(), input.Actor, note, now))

	return updated, nil
}

type ChargeNowInput struct {
	ChargeIds       []string
	PaymentMethodId string // empty selects the default method
}

// ChargeNow settles the selected charges in full: a payment for the entire
// outstanding balance is appended to each, the balance drops to zero and any
// installment plan is cancelled. Outstanding-balance alerts whose referenced
// charges are all fully paid afterwards are removed from the record.
func ChargeNow(rec record.PatientRecord, input ChargeNowInput, now time.Time) (record.PatientRecord, error) {
	if len(input.ChargeIds) == 0 {
		return record.PatientRecord{}, fmt.Errorf("%w: no charges selected", ErrInvalidSelection)
	}

	method, err := resolvePaymentMethod(rec, input.PaymentMethodId)
	if err != nil {
		return record.PatientRecord{}, err
	}

	for _, id := range input.ChargeIds {
		charge, ok := rec.Charge(id)
		if !ok {
			return record.PatientRecord{}, fmt.Errorf("%w: charge %s does not exist", ErrInvalidSelection, id)
		}
		if !charge.HasOutstandingBalance() {
			return record.PatientRecord{}, fmt.Errorf("%w: charge %s has no outstanding balance", ErrInvalidSelection, id)
		}
	}

	selected := mapset.NewSet(input.ChargeIds...)
	updated := rec.Clone()

	for i := range updated.Charges {
		c := &updated.Charges[i]
		if !selected.Contains(c.Id) {
			continue
		}

		methodSnapshot := method
		c.Payments = append(c.Payments, record.Payment{
			Id:            record.NewPaymentId(),
			Amount:        c.TotalOutstanding,
			CreatedDate:   now,
			PaymentMethod: &methodSnapshot,
			PaymentMedium: record.PaymentMediumCard,
			Refunds:       []record.Refund{},
		})

		if c.HasPaymentPlan() {
			previous := "None"
			if c.Comment != nil && *c.Comment != "" {
				previous = *c.Comment
			}
			note := fmt.Sprintf("Charge paid in full - payment plan cancelled. Original comment: %s", previous)
			c.Comment = &note
			c.PlannedPayments = []record.PlannedPayment{}
		}

		c.TotalOutstanding = 0
		c.Status = record.DeriveChargeStatus(c.TotalOutstanding, c.Total)
	}

	updated.Alerts = resolveOutstandingBalanceAlerts(updated)

	return updated, nil
}

// resolveOutstandingBalanceAlerts drops outstanding-balance alerts for which
// no referenced charge still carries a balance. Resolution is decided against
// the charges' actual balances rather than the current command's selection,
// so an alert spanning several charges resolves once the last one is settled
// regardless of how many commands it took.
func resolveOutstandingBalanceAlerts(rec record.PatientRecord) []record.Alert {
	outstanding := mapset.NewSet[string]()
	for _, c := range rec.Charges {
		if c.HasOutstandingBalance() {
			outstanding.Add(c.Id)
		}
	}

	active := make([]record.Alert, 0, len(rec.Alerts))
	for _, alert := range rec.Alerts {
		if alert.Type == record.AlertTypeOutstandingBalance {
			unpaid := false
			for _, id := range alert.ReferencedChargeIds() {
				if outstanding.Contains(id) {
					unpaid = true
					break
				}
			}
			if !unpaid {
				continue
			}
		}
		active = append(active, alert)
	}
	return active
}

func resolvePaymentMethod(rec record.PatientRecord, id string) (record.PaymentMethod, error) {
	if id != "" {
		method, ok := rec.PaymentMethod(id)
		if !ok {
			return record.PaymentMethod{}, fmt.Errorf("%w: payment method %s does not exist", ErrInvalidSelection, id)
		}
		return method, nil
	}
	method, ok := rec.DefaultPaymentMethod()
	if !ok {
		return record.PaymentMethod{}, fmt.Errorf("%w: no default payment method on file", ErrInvalidSelection)
	}
	return method, nil
}

func combineDateTime(date, clock string) (time.Time, error) {
	return time.Parse(scheduleDateLayout+" "+scheduleTimeLayout, date+" "+clock)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
