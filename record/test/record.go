package test

import (
	"strconv"
	"time"

	"github.com/decodahealth/patient-record/pointer"
	"github.com/decodahealth/patient-record/record"
	"github.com/decodahealth/patient-record/test"
)

func RandomPersonRef() record.PersonRef {
	return record.PersonRef{
		Id:          "usr_" + test.Faker.UUID().V4(),
		FirstName:   test.Faker.Person().FirstName(),
		LastName:    test.Faker.Person().LastName(),
		Email:       test.Faker.Internet().Email(),
		PhoneNumber: test.Faker.Phone().Number(),
	}
}

func RandomPaymentMethod() record.PaymentMethod {
	return record.PaymentMethod{
		Id:          "pm_" + test.Faker.UUID().V4(),
		PatientId:   "pt_" + test.Faker.UUID().V4(),
		Brand:       pointer.FromAny("Visa"),
		Last4:       pointer.FromAny(strconv.Itoa(test.Faker.IntBetween(1000, 9999))),
		ExpMonth:    pointer.FromAny(test.Faker.IntBetween(1, 12)),
		ExpYear:     pointer.FromAny(test.Faker.IntBetween(2030, 2040)),
		Description: test.Faker.Lorem().Word(),
		Type:        "CARD",
		IsDefault:   true,
	}
}

// RandomUnpaidCharge has its full total outstanding and no payments.
func RandomUnpaidCharge() record.Charge {
	total := float64(test.Faker.IntBetween(20, 500))
	return record.Charge{
		Id:               "ch_" + test.Faker.UUID().V4(),
		Total:            total,
		TotalOutstanding: total,
		Description:      test.Faker.Lorem().Sentence(3),
		Status:           record.ChargeStatusUnpaid,
		Patient:          RandomPersonRef(),
		CreatedDate:      test.Faker.Time().Time(time.Now()),
		Creator:          RandomPersonRef(),
		Adjustments:      []record.Adjustment{},
		Payments:         []record.Payment{},
		PlannedPayments:  []record.PlannedPayment{},
		Items:            []record.ChargeItem{},
	}
}

// RandomScheduledCharge is due in the past with auto-pay enabled, so a
// processor run settles it.
func RandomScheduledCharge(now time.Time) record.Charge {
	charge := RandomUnpaidCharge()
	method := RandomPaymentMethod()
	charge.ScheduledPaymentDate = pointer.FromAny(now.AddDate(0, 0, -1))
	charge.ScheduledPaymentAmount = pointer.FromAny(charge.TotalOutstanding)
	charge.ScheduledPaymentMethod = &method
	charge.AutoPayEnabled = pointer.FromAny(true)
	return charge
}

func RandomUpcomingEvent(now time.Time) record.Event {
	start := now.Add(time.Duration(test.Faker.IntBetween(25, 144)) * time.Hour)
	return record.Event{
		Id:        "evt_" + test.Faker.UUID().V4(),
		Title:     test.Faker.Lorem().Sentence(2),
		Organizer: RandomPersonRef(),
		Start:     start,
		End:       start.Add(30 * time.Minute),
		Type:      "APPOINTMENT",
		Status:    record.EventStatusConfirmed,
		Attendees: []record.Attendee{},
	}
}

func RandomMemo(now time.Time) record.Memo {
	return record.Memo{
		Id:          record.NewMemoId(),
		Patient:     RandomPersonRef(),
		Note:        test.Faker.Lorem().Sentence(8),
		Creator:     RandomPersonRef(),
		CreatedDate: now,
		UpdatedDate: now,
	}
}

func RandomOutstandingBalanceAlert(charges ...record.Charge) record.Alert {
	refs := make([]record.AlertChargeRef, 0, len(charges))
	total := 0.0
	for _, c := range charges {
		refs = append(refs, record.AlertChargeRef{
			Id:          c.Id,
			Description: c.Description,
			Amount:      c.TotalOutstanding,
			DueDate:     c.CreatedDate,
		})
		total += c.TotalOutstanding
	}
	return record.Alert{
		Id:   "alrt_" + test.Faker.UUID().V4(),
		Type: record.AlertTypeOutstandingBalance,
		Data: record.AlertData{
			TotalOutstanding:     &total,
			Charges:              refs,
			PaymentPlanAvailable: pointer.FromAny(true),
		},
		CreatedDate:    time.Now(),
		ActionRequired: true,
		Tags:           []record.AlertTag{},
		Occurrences:    1,
		Patient:        RandomPersonRef(),
	}
}

// RandomRecord builds a consistent aggregate: a patient, one unpaid charge,
// one upcoming event and a default payment method.
func RandomRecord(now time.Time) record.PatientRecord {
	patientRef := RandomPersonRef()
	method := RandomPaymentMethod()
	charge := RandomUnpaidCharge()
	charge.Patient = patientRef
	method.PatientId = patientRef.Id

	return record.PatientRecord{
		Patient: record.Patient{
			Id:          patientRef.Id,
			FirstName:   patientRef.FirstName,
			LastName:    patientRef.LastName,
			PhoneNumber: patientRef.PhoneNumber,
			Email:       patientRef.Email,
			Gender:      "FEMALE",
			DateOfBirth: "1985-07-15",
			CreatedDate: test.Faker.Time().Time(now),
		},
		Charges:        []record.Charge{charge},
		Events:         []record.Event{RandomUpcomingEvent(now)},
		DoctorsNotes:   []record.DoctorNote{},
		Memos:          []record.Memo{},
		Alerts:         []record.Alert{},
		PaymentMethods: []record.PaymentMethod{method},
	}
}
