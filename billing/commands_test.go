package billing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/decodahealth/patient-record/billing"
	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/pointer"
	"github.com/decodahealth/patient-record/record"
	recordTest "github.com/decodahealth/patient-record/record/test"
)

var _ = Describe("SchedulePayment", func() {
	var now time.Time
	var rec record.PatientRecord
	var input billing.SchedulePaymentInput

	BeforeEach(func() {
		now = time.Now()
		rec = recordTest.RandomRecord(now)
		input = billing.SchedulePaymentInput{
			ChargeIds:      []string{rec.Charges[0].Id},
			Date:           now.AddDate(0, 0, 7).Format("2006-01-02"),
			Time:           "09:30",
			AutoPayEnabled: true,
			Actor:          recordTest.RandomPersonRef(),
		}
	})

	It("sets all four scheduling fields", func() {
		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())

		charge := updated.Charges[0]
		Expect(charge.ScheduledPaymentDate).ToNot(BeNil())
		Expect(charge.ScheduledPaymentAmount).ToNot(BeNil())
		Expect(*charge.ScheduledPaymentAmount).To(Equal(charge.TotalOutstanding))
		Expect(charge.ScheduledPaymentMethod).ToNot(BeNil())
		Expect(charge.AutoPayEnabled).To(HaveValue(BeTrue()))
	})

	It("uses the default payment method when none is given", func() {
		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.Charges[0].ScheduledPaymentMethod.Id).To(Equal(rec.PaymentMethods[0].Id))
	})

	It("honors a per-charge amount override", func() {
		partial := rec.Charges[0].TotalOutstanding / 2
		input.Amounts = map[string]float64{rec.Charges[0].Id: partial}

		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(*updated.Charges[0].ScheduledPaymentAmount).To(Equal(partial))
	})

	It("ignores an override above the outstanding balance", func() {
		input.Amounts = map[string]float64{rec.Charges[0].Id: rec.Charges[0].TotalOutstanding + 1}

		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(*updated.Charges[0].ScheduledPaymentAmount).To(Equal(rec.Charges[0].TotalOutstanding))
	})

	It("appends a scheduling note to the charge comment", func() {
		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(*updated.Charges[0].Comment).To(ContainSubstring("Scheduled payment:"))
	})

	It("prepends exactly one audit memo", func() {
		updated, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())

		Expect(updated.Memos).To(HaveLen(len(rec.Memos) + 1))
		Expect(updated.Memos[0].Note).To(ContainSubstring("Scheduled payment setup"))
		Expect(updated.Memos[0].Creator).To(Equal(input.Actor))
	})

	It("rejects an empty selection", func() {
		input.ChargeIds = nil
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("rejects an unknown charge", func() {
		input.ChargeIds = []string{"ch_missing"}
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("rejects a charge without outstanding balance", func() {
		rec.Charges[0].TotalOutstanding = 0
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("rejects a charge that already has a scheduled payment", func() {
		rec.Charges[0].ScheduledPaymentDate = pointer.FromAny(now.AddDate(0, 0, 3))
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("rejects a malformed date", func() {
		input.Date = "not-a-date"
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSchedule))
	})

	It("rejects when no default payment method exists", func() {
		rec.PaymentMethods = nil
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("leaves the input record untouched", func() {
		_, err := billing.SchedulePayment(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(rec.Charges[0].ScheduledPaymentDate).To(BeNil())
		Expect(rec.Memos).To(BeEmpty())
	})
})

var _ = Describe("ChargeNow", func() {
	var now time.Time
	var rec record.PatientRecord
	var input billing.ChargeNowInput

	BeforeEach(func() {
		now = time.Now()
		rec = recordTest.RandomRecord(now)
		rec.Charges[0].Total = 250
		rec.Charges[0].TotalOutstanding = 50
		rec.Charges[0].Status = record.ChargeStatusPartiallyPaid
		input = billing.ChargeNowInput{
			ChargeIds: []string{rec.Charges[0].Id},
		}
	})

	It("settles the charge in full", func() {
		updated, err := billing.ChargeNow(rec, input, now)
		Expect(err).ToNot(HaveOccurred())

		charge := updated.Charges[0]
		Expect(charge.TotalOutstanding).To(BeZero())
		Expect(charge.Status).To(Equal(record.ChargeStatusPaid))
		Expect(charge.Payments).To(HaveLen(1))
		Expect(charge.Payments[0].Amount).To(Equal(50.0))
		Expect(charge.Payments[0].PaymentMedium).To(Equal(record.PaymentMediumCard))
	})

	It("snapshots the payment method onto the payment", func() {
		updated, err := billing.ChargeNow(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.Charges[0].Payments[0].PaymentMethod.Id).To(Equal(rec.PaymentMethods[0].Id))
	})

	It("cancels an installment plan and rewrites the comment", func() {
		rec.Charges[0].PlannedPayments = []record.PlannedPayment{
			{Id: "pln_1", Amount: 50, PaymentDate: now.AddDate(0, 0, 14), Status: "SCHEDULED"},
		}
		rec.Charges[0].Comment = pointer.FromAny("payment plan agreed")

		updated, err := billing.ChargeNow(rec, input, now)
		Expect(err).ToNot(HaveOccurred())

		charge := updated.Charges[0]
		Expect(charge.PlannedPayments).To(BeEmpty())
		Expect(*charge.Comment).To(Equal("Charge paid in full - payment plan cancelled. Original comment: payment plan agreed"))
	})

	It("does not synthesize a memo", func() {
		updated, err := billing.ChargeNow(rec, input, now)
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.Memos).To(HaveLen(len(rec.Memos)))
	})

	It("rejects a charge with nothing outstanding", func() {
		rec.Charges[0].TotalOutstanding = 0
		_, err := billing.ChargeNow(rec, input, now)
		Expect(err).To(MatchError(billing.ErrInvalidSelection))
	})

	It("maps the rejection to a constraint violation", func() {
		rec.Charges[0].TotalOutstanding = 0
		_, err := billing.ChargeNow(rec, input, now)
		Expect(err).To(MatchError(errors.ConstraintViolation))
	})

	Describe("outstanding balance alerts", func() {
		var chargeA, chargeB record.Charge

		BeforeEach(func() {
			chargeA = rec.Charges[0]
			chargeB = recordTest.RandomUnpaidCharge()
			rec.Charges = append(rec.Charges, chargeB)
			rec.Alerts = []record.Alert{recordTest.RandomOutstandingBalanceAlert(chargeA, chargeB)}
		})

		It("keeps the alert while any referenced charge is unpaid", func() {
			input.ChargeIds = []string{chargeA.Id}
			updated, err := billing.ChargeNow(rec, input, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Alerts).To(HaveLen(1))
		})

		It("drops the alert once both charges are settled across two commands", func() {
			input.ChargeIds = []string{chargeA.Id}
			intermediate, err := billing.ChargeNow(rec, input, now)
			Expect(err).ToNot(HaveOccurred())

			input.ChargeIds = []string{chargeB.Id}
			updated, err := billing.ChargeNow(intermediate, input, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Alerts).To(BeEmpty())
		})

		It("drops the alert when both charges are settled in one command", func() {
			input.ChargeIds = []string{chargeA.Id, chargeB.Id}
			updated, err := billing.ChargeNow(rec, input, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Alerts).To(BeEmpty())
		})

		It("leaves other alert types alone", func() {
			rec.Alerts = append(rec.Alerts, record.Alert{
				Id:   "alrt_message",
				Type: record.AlertTypeMessageReceived,
			})
			input.ChargeIds = []string{chargeA.Id, chargeB.Id}

			updated, err := billing.ChargeNow(rec, input, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Alerts).To(HaveLen(1))
			Expect(updated.Alerts[0].Type).To(Equal(record.AlertTypeMessageReceived))
		})
	})
})
