package store

import (
	"time"

	"github.com/decodahealth/patient-record/pointer"
	"github.com/decodahealth/patient-record/record"
)

// SeedRecord builds the demo aggregate used by the seed command and local
// development. Historical timestamps are fixed; the upcoming appointment is
// placed relative to now so it stays in the future.
func SeedRecord(now time.Time) record.PatientRecord {
	patientRef := record.PersonRef{
		Id:          "pt_5f8a92a3eb28c15dc7a9a3d1",
		FirstName:   "Sarah",
		LastName:    "Johnson",
		Email:       "sarah.johnson@example.com",
		PhoneNumber: "+12065551234",
	}
	davisRef := record.PersonRef{
		Id:        "usr_3c4d5e6f7g8h9i0j1k",
		FirstName: "Robert",
		LastName:  "Davis",
		Email:     "robert.davis@decodahealth.com",
	}
	chenRef := record.PersonRef{
		Id:        "usr_4d5e6f7g8h9i0j1k2l",
		FirstName: "Emily",
		LastName:  "Chen",
		Email:     "emily.chen@decodahealth.com",
	}
	davis := record.Provider{
		Id:         davisRef.Id,
		FirstName:  davisRef.FirstName,
		LastName:   davisRef.LastName,
		Email:      davisRef.Email,
		Title:      pointer.FromAny("MD, Internal Medicine"),
		Department: pointer.FromAny("Primary Care"),
		Phone:      pointer.FromAny("+1 (206) 555-0123"),
	}
	chen := record.Provider{
		Id:         chenRef.Id,
		FirstName:  chenRef.FirstName,
		LastName:   chenRef.LastName,
		Email:      chenRef.Email,
		Title:      pointer.FromAny("MD, Family Medicine"),
		Department: pointer.FromAny("Family Practice"),
		Phone:      pointer.FromAny("+1 (206) 555-0156"),
	}
	rodriguez := record.Provider{
		Id:         "usr_5e6f7g8h9i0j1k2l3m",
		FirstName:  "Maria",
		LastName:   "Rodriguez",
		Email:      "maria.rodriguez@decodahealth.com",
		Title:      pointer.FromAny("Billing Coordinator"),
		Department: pointer.FromAny("Patient Financial Services"),
		Phone:      pointer.FromAny("+1 (206) 555-0178"),
	}

	primaryCard := record.PaymentMethod{
		Id:          "pm_7y6t5r4e3w2q1z0x9",
		PatientId:   patientRef.Id,
		Brand:       pointer.FromAny("Visa"),
		Last4:       pointer.FromAny("4242"),
		ExpMonth:    pointer.FromAny(12),
		ExpYear:     pointer.FromAny(2025),
		Description: "Primary Card",
		Type:        "CARD",
		IsDefault:   true,
	}
	checkingAccount := record.PaymentMethod{
		Id:                 "pm_6x5w4v3u2t1s0r9q8",
		PatientId:          patientRef.Id,
		AccountHolderType:  pointer.FromAny("individual"),
		AccountNumberLast4: pointer.FromAny(9876),
		BankName:           pointer.FromAny("Chase Bank"),
		RoutingNumber:      pointer.FromAny(123456789),
		Description:        "Checking Account",
		Type:               "BANK_ACCOUNT",
		IsDefault:          false,
	}

	mainClinic := record.Location{
		Id:      "loc_1q2w3e4r5t6y7u8i9o",
		Name:    "Main Clinic",
		Address: "456 Medical Plaza",
		City:    "Seattle",
		State:   "WA",
		ZipCode: "98101",
		Country: "USA",
	}

	upcomingStart := now.AddDate(0, 0, 30).Truncate(time.Hour)

	return record.PatientRecord{
		Patient: record.Patient{
			Id:                   patientRef.Id,
			FirstName:            "Sarah",
			LastName:             "Johnson",
			PhoneNumber:          "+12065551234",
			Email:                "sarah.johnson@example.com",
			Address:              "123 Main Street",
			AddressLineTwo:       pointer.FromAny("Apt 4B"),
			City:                 "Seattle",
			State:                "WA",
			ZipCode:              "98101",
			Country:              "USA",
			AddressValid:         true,
			MaritalStatus:        "MARRIED",
			Gender:               "FEMALE",
			EmploymentStatus:     "EMPLOYED",
			DateOfBirth:          "1985-07-15",
			Allergies:            []string{"Penicillin", "Peanuts"},
			FamilyHistory:        []string{"Diabetes", "Hypertension"},
			MedicalHistory:       []string{"Asthma", "Seasonal allergies"},
			Prescriptions:        []string{"Albuterol inhaler", "Zyrtec"},
			GoalWeight:           145,
			IsOnboardingComplete: true,
			CreatedDate:          ts("2022-03-15T10:30:00Z"),
			Measurements: []record.Measurement{
				{
					Id:        "ms_9d8c7b6a5f4e3d2c1b0a",
					PatientId: patientRef.Id,
					Type:      "WEIGHT",
					Value:     "155.5",
					Unit:      "lb",
					Date:      ts("2023-08-12T14:20:00Z"),
				},
				{
					Id:        "ms_8c7d6e5f4g3h2i1j0k",
					PatientId: patientRef.Id,
					Type:      "HEIGHT",
					Value:     "65.5",
					Unit:      "in",
					Date:      ts("2023-08-12T14:20:00Z"),
				},
				{
					Id:        "ms_7b6c5d4e3f2g1h0i9j",
					PatientId: patientRef.Id,
					Type:      "BLOOD_PRESSURE",
					Value:     "120/80",
					Unit:      "mmHg",
					Date:      ts("2023-09-05T09:15:00Z"),
				},
			},
			Medications: []record.Medication{
				{
					Id:        "md_6f5e4d3c2b1a0z9y8x",
					PatientId: patientRef.Id,
					Name:      "Albuterol",
					Dosage:    "90mcg",
					Frequency: "As needed",
					StartDate: "2022-05-10",
					Active:    true,
				},
				{
					Id:        "md_5e4d3c2b1a0z9y8x7w",
					PatientId: patientRef.Id,
					Name:      "Zyrtec",
					Dosage:    "10mg",
					Frequency: "Once daily",
					StartDate: "2023-02-20",
					Active:    true,
				},
			},
		},
		Alerts: []record.Alert{
			{
				Id:   "alrt_1a2b3c4d5e6f7g8h9i",
				Type: record.AlertTypeFormSubmitted,
				Data: record.AlertData{
					Name:        pointer.FromAny("Allergy Questionnaire"),
					SubmittedAt: pointer.FromAny(ts("2023-10-02T11:15:00Z")),
				},
				CreatedDate:    ts("2023-10-02T11:15:00Z"),
				ActionRequired: true,
				Tags: []record.AlertTag{
					{Id: "tag_5a4b3c2d1e", Name: "Forms"},
					{Id: "tag_6b5c4d3e2f", Name: "Patient Intake"},
				},
				AssignedProvider: davis,
				Occurrences:      1,
				Patient:          patientRef,
			},
			{
				Id:   "alrt_2b3c4d5e6f7g8h9i0j",
				Type: record.AlertTypeAppointmentScheduled,
				Data: record.AlertData{
					EventId: pointer.FromAny("evt_0a1b2c3d4e5f6g7h8i9"),
					Name:    pointer.FromAny("Annual Physical"),
				},
				CreatedDate:    ts("2024-03-01T16:45:00Z"),
				ActionRequired: true,
				Tags: []record.AlertTag{
					{Id: "tag_7c6d5e4f3g", Name: "Appointments"},
				},
				AssignedProvider: chen,
				Occurrences:      1,
				Patient:          patientRef,
			},
			{
				Id:   "alrt_3c4d5e6f7g8h9i0j1k",
				Type: record.AlertTypeMessageReceived,
				Data: record.AlertData{
					Message: pointer.FromAny("Hello Dr. Davis, I've been experiencing increased allergy symptoms despite taking the medication as prescribed. Could we discuss other options?"),
				},
				CreatedDate:    ts("2023-09-25T14:30:00Z"),
				ActionRequired: true,
				Tags: []record.AlertTag{
					{Id: "tag_8d7e6f5g4h", Name: "Messages"},
					{Id: "tag_9e8f7g6h5i", Name: "Urgent"},
				},
				AssignedProvider: davis,
				Occurrences:      1,
				Patient:          patientRef,
			},
			{
				Id:   "alrt_4d5e6f7g8h9i0j1k2l",
				Type: record.AlertTypeOutstandingBalance,
				Data: record.AlertData{
					TotalOutstanding: pointer.FromAny(135.0),
					Charges: []record.AlertChargeRef{
						{
							Id:          "ch_7d8e9f0a1b2c3d4e5f6g",
							Description: "Initial Consultation",
							Amount:      50.0,
							DueDate:     ts("2023-07-15T00:00:00Z"),
						},
						{
							Id:          "ch_1a2s3d4f5g6h7j8k9l",
							Description: "Prescription Renewal",
							Amount:      85.0,
							DueDate:     ts("2023-11-05T00:00:00Z"),
						},
					},
					PaymentPlanAvailable: pointer.FromAny(true),
				},
				CreatedDate:    ts("2023-10-05T12:00:00Z"),
				ActionRequired: true,
				Tags: []record.AlertTag{
					{Id: "tag_10a9b8c7d6", Name: "Billing"},
					{Id: "tag_11b0a9c8d7", Name: "Payment Required"},
				},
				AssignedProvider: rodriguez,
				Occurrences:      1,
				Patient:          patientRef,
			},
		},
		Charges: []record.Charge{
			{
				Id:               "ch_7d8e9f0a1b2c3d4e5f6g",
				Total:            250.0,
				TotalOutstanding: 50.0,
				Description:      "Initial Consultation",
				Status:           record.ChargeStatusPartiallyPaid,
				Patient:          patientRef,
				CreatedDate:      ts("2023-06-15T09:30:00Z"),
				Creator:          davisRef,
				Adjustments: []record.Adjustment{
					{
						Id:          "adj_1a2b3c4d5e6f7g8h9i",
						ChargeId:    "ch_7d8e9f0a1b2c3d4e5f6g",
						Amount:      25.0,
						Type:        "DISCOUNT",
						Description: "New patient discount",
						CreatedDate: ts("2023-06-15T09:35:00Z"),
					},
				},
				Payments: []record.Payment{
					{
						Id:            "pmt_9h8g7f6e5d4c3b2a1",
						Amount:        175.0,
						CreatedDate:   ts("2023-06-15T10:15:00Z"),
						PaymentMethod: pointer.FromAny(primaryCard),
						PaymentMedium: record.PaymentMediumCard,
						Refunds:       []record.Refund{},
					},
				},
				PlannedPayments: []record.PlannedPayment{
					{
						Id:          "pln_5r4e3w2q1z0x9v8u7",
						Amount:      50.0,
						PaymentDate: ts("2023-07-15T00:00:00Z"),
						Status:      "SCHEDULED",
					},
				},
				Comment: pointer.FromAny("Patient requested payment plan for remaining balance"),
				Items: []record.ChargeItem{
					{
						ItemId:   "itm_3q2w1e4r5t6y7u8i9o",
						ChargeId: "ch_7d8e9f0a1b2c3d4e5f6g",
						Quantity: 1,
						Item: record.Item{
							Id:          "itm_3q2w1e4r5t6y7u8i9o",
							Name:        "Initial Consultation",
							Description: "First-time comprehensive health evaluation",
							Price:       250.0,
							Active:      true,
							CreatedDate: ts("2022-01-10T08:00:00Z"),
							Category:    "Consultations",
						},
					},
				},
				LocationId:   pointer.FromAny("loc_1q2w3e4r5t6y7u8i9o"),
				LocationName: pointer.FromAny("Main Clinic"),
			},
			{
				Id:               "ch_2b3c4d5e6f7g8h9i0j",
				Total:            175.0,
				TotalOutstanding: 0.0,
				Description:      "Follow-up Appointment",
				Status:           record.ChargeStatusPaid,
				Patient:          patientRef,
				CreatedDate:      ts("2023-08-20T14:00:00Z"),
				Creator:          davisRef,
				Adjustments:      []record.Adjustment{},
				Payments: []record.Payment{
					{
						Id:            "pmt_8g7f6e5d4c3b2a1z0",
						Amount:        175.0,
						CreatedDate:   ts("2023-08-20T14:30:00Z"),
						PaymentMethod: pointer.FromAny(primaryCard),
						PaymentMedium: record.PaymentMediumCard,
						Refunds:       []record.Refund{},
					},
				},
				PlannedPayments: []record.PlannedPayment{},
				Items: []record.ChargeItem{
					{
						ItemId:   "itm_5t6y7u8i9o0p1a2s3d",
						ChargeId: "ch_2b3c4d5e6f7g8h9i0j",
						Quantity: 1,
						Item: record.Item{
							Id:          "itm_5t6y7u8i9o0p1a2s3d",
							Name:        "Follow-up Appointment",
							Description: "Scheduled follow-up visit",
							Price:       175.0,
							Active:      true,
							CreatedDate: ts("2022-01-10T08:00:00Z"),
							Category:    "Consultations",
						},
					},
				},
				LocationId:   pointer.FromAny("loc_1q2w3e4r5t6y7u8i9o"),
				LocationName: pointer.FromAny("Main Clinic"),
			},
			{
				Id:               "ch_1a2s3d4f5g6h7j8k9l",
				Total:            85.0,
				TotalOutstanding: 85.0,
				Description:      "Prescription Renewal",
				Status:           record.ChargeStatusUnpaid,
				Patient:          patientRef,
				CreatedDate:      ts("2023-10-05T11:45:00Z"),
				Creator:          davisRef,
				Adjustments:      []record.Adjustment{},
				Payments:         []record.Payment{},
				PlannedPayments:  []record.PlannedPayment{},
				Comment:          pointer.FromAny("Prescription renewal without appointment"),
				Items: []record.ChargeItem{
					{
						ItemId:   "itm_7u8i9o0p1a2s3d4f5g",
						ChargeId: "ch_1a2s3d4f5g6h7j8k9l",
						Quantity: 1,
						Item: record.Item{
							Id:          "itm_7u8i9o0p1a2s3d4f5g",
							Name:        "Prescription Renewal",
							Description: "Renewal of existing prescriptions",
							Price:       85.0,
							Active:      true,
							CreatedDate: ts("2022-01-10T08:00:00Z"),
							Category:    "Medications",
						},
					},
				},
			},
		},
		Events: []record.Event{
			{
				Id:        "evt_0a1b2c3d4e5f6g7h8i9",
				Title:     "Annual Physical",
				Organizer: chenRef,
				Start:     ts("2024-03-20T11:00:00Z"),
				End:       ts("2024-03-20T12:00:00Z"),
				Type:      "APPOINTMENT",
				Status:    record.EventStatusCompleted,
				Attendees: []record.Attendee{
					{User: patientRef, InviteStatus: "ACCEPTED"},
					{User: chenRef, InviteStatus: "ACCEPTED"},
				},
				Location: mainClinic,
				Appointment: &record.Appointment{
					Id:                 "apt_1b2c3d4e5f6g7h8i9j0",
					EventId:            "evt_0a1b2c3d4e5f6g7h8i9",
					PatientId:          patientRef.Id,
					ProviderId:         chenRef.Id,
					Reason:             "Annual physical examination",
					ConfirmationStatus: "CONFIRMED",
					ConfirmationDate:   ts("2024-03-01T16:45:00Z"),
					AppointmentType:    "ANNUAL_PHYSICAL",
				},
			},
			{
				Id:        "evt_7d8e9f0a1b2c3d4e5f6g",
				Title:     "Follow-up Appointment",
				Organizer: davisRef,
				Start:     ts("2023-08-20T14:00:00Z"),
				End:       ts("2023-08-20T14:30:00Z"),
				Type:      "APPOINTMENT",
				Status:    record.EventStatusCompleted,
				Attendees: []record.Attendee{
					{User: patientRef, InviteStatus: "ACCEPTED"},
					{User: davisRef, InviteStatus: "ACCEPTED"},
				},
				Location:      mainClinic,
				FormCompleted: true,
				Appointment: &record.Appointment{
					Id:                 "apt_8e9f0a1b2c3d4e5f6g7",
					EventId:            "evt_7d8e9f0a1b2c3d4e5f6g",
					PatientId:          patientRef.Id,
					ProviderId:         davisRef.Id,
					Reason:             "Follow-up for seasonal allergies",
					ConfirmationStatus: "CONFIRMED",
					ConfirmationDate:   ts("2023-08-15T09:22:00Z"),
					CheckedInDate:      pointer.FromAny(ts("2023-08-20T13:50:00Z")),
					AppointmentType:    "FOLLOW_UP",
				},
			},
			{
				Id:        "evt_allergy_followup",
				Title:     "Allergy Follow-up",
				Organizer: davisRef,
				Start:     upcomingStart,
				End:       upcomingStart.Add(30 * time.Minute),
				Type:      "APPOINTMENT",
				Status:    record.EventStatusConfirmed,
				Attendees: []record.Attendee{
					{User: patientRef, InviteStatus: "ACCEPTED"},
					{User: davisRef, InviteStatus: "ACCEPTED"},
				},
				Location: mainClinic,
				Appointment: &record.Appointment{
					Id:                 "apt_allergy_followup",
					EventId:            "evt_allergy_followup",
					PatientId:          patientRef.Id,
					ProviderId:         davisRef.Id,
					Reason:             "Follow-up on allergy treatment effectiveness",
					ConfirmationStatus: "CONFIRMED",
					ConfirmationDate:   now,
					AppointmentType:    "FOLLOW_UP",
				},
			},
		},
		DoctorsNotes: []record.DoctorNote{
			{
				Id:               "nt_1a2b3c4d5e6f7g8h9i",
				EventId:          "evt_7d8e9f0a1b2c3d4e5f6g",
				ParentNoteId:     "nt_1a2b3c4d5e6f7g8h9i",
				NoteTranscriptId: pointer.FromAny("ntr_9h8g7f6e5d4c3b2a1z"),
				Duration:         pointer.FromAny(1800),
				Version:          2,
				CurrentVersion:   2,
				Content:          "Patient presented with complaints of seasonal allergies. Symptoms include nasal congestion, sneezing, and itchy eyes persisting for 2 weeks. Patient reports taking OTC Zyrtec with partial relief.\n\nVital signs within normal range. Clear lung sounds, no wheezing or distress. No sinus tenderness observed.\n\nAssessment: Seasonal allergic rhinitis\n\nPlan:\n1. Continue Zyrtec 10mg daily\n2. Add Flonase nasal spray 1-2 sprays each nostril daily\n3. Avoid known allergens, keep windows closed during high pollen times\n4. Return if symptoms worsen or do not improve within 2 weeks",
				Summary:          "Follow-up for seasonal allergies. Prescribed Flonase in addition to existing Zyrtec regimen. Patient advised on allergen avoidance.",
				AiGenerated:      true,
				Patient:          patientRef,
				CreatedDate:      ts("2023-08-20T14:45:00Z"),
				ProviderNames:    []string{"Dr. Robert Davis", "Dr. Emily Chen"},
			},
			{
				Id:               "nt_2b3c4d5e6f7g8h9i0j",
				EventId:          "evt_8e9f0a1b2c3d4e5f6g7",
				ParentNoteId:     "nt_2b3c4d5e6f7g8h9i0j",
				NoteTranscriptId: pointer.FromAny("ntr_8g7f6e5d4c3b2a1z0y"),
				Duration:         pointer.FromAny(1200),
				Version:          1,
				CurrentVersion:   1,
				Content:          "Patient presented for asthma check-up. Reports using rescue inhaler about 2-3 times per week, mostly after exercise. No nighttime symptoms. No ER visits or systemic steroids needed since last visit.\n\nLung examination reveals good air entry bilaterally, occasional end-expiratory wheeze after forced exhalation.\n\nSpirometry results: FEV1 85% of predicted. No significant change from previous.\n\nAssessment: Moderate persistent asthma, well controlled.\n\nPlan:\n1. Continue Albuterol inhaler as needed\n2. Reviewed proper inhaler technique\n3. Encouraged regular exercise with appropriate warm-up\n4. Follow up in 6 months or sooner if symptoms worsen",
				Summary:          "Routine asthma check-up. Current regimen is effective with good control. No changes to medications needed.",
				AiGenerated:      true,
				Patient:          patientRef,
				CreatedDate:      ts("2023-05-10T09:30:00Z"),
				ProviderNames:    []string{"Dr. Robert Davis"},
			},
		},
		Memos: []record.Memo{
			{
				Id:          "qn_1a2b3c4d5e6f7g8h9i",
				Patient:     patientRef,
				Note:        "Patient called to discuss increased allergy symptoms. Advised to double Flonase dose temporarily and schedule follow-up if no improvement in 7 days.",
				Creator:     davisRef,
				CreatedDate: ts("2023-09-26T10:15:00Z"),
				UpdatedDate: ts("2023-09-26T10:15:00Z"),
			},
			{
				Id:          "qn_2b3c4d5e6f7g8h9i0j",
				Patient:     patientRef,
				Note:        "Patient requested prescription refill for Albuterol inhaler. Approved 90-day supply with 2 refills.",
				Creator:     chenRef,
				CreatedDate: ts("2023-07-12T14:30:00Z"),
				UpdatedDate: ts("2023-07-12T14:30:00Z"),
			},
		},
		PaymentMethods: []record.PaymentMethod{primaryCard, checkingAccount},
	}
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
