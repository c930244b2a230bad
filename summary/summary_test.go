package summary_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/decodahealth/patient-record/record"
	recordTest "github.com/decodahealth/patient-record/record/test"
	"github.com/decodahealth/patient-record/summary"
)

var _ = Describe("Generate", func() {
	var now time.Time
	var rec record.PatientRecord

	BeforeEach(func() {
		now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		rec = recordTest.RandomRecord(now)
		rec.Patient.FirstName = "Sarah"
		rec.Patient.LastName = "Johnson"
		rec.Patient.Gender = "FEMALE"
		rec.Patient.DateOfBirth = "1985-07-15"
		rec.Patient.MedicalHistory = []string{"Asthma", "Seasonal allergies"}
	})

	It("opens with name, age, gender and history", func() {
		result := summary.Generate(rec, now)
		Expect(result.Text).To(HavePrefix("Sarah Johnson is a 39-year-old female patient with a medical history of Asthma, Seasonal allergies."))
	})

	It("falls back when the history is empty", func() {
		rec.Patient.MedicalHistory = nil
		result := summary.Generate(rec, now)
		Expect(result.Text).To(ContainSubstring("medical history of no significant conditions"))
	})

	It("lists known allergies", func() {
		rec.Patient.Allergies = []string{"Penicillin", "Peanuts"}
		result := summary.Generate(rec, now)
		Expect(result.Text).To(ContainSubstring("Known allergies include Penicillin, Peanuts."))
	})

	It("mentions the latest visit using the note summary", func() {
		rec.DoctorsNotes = []record.DoctorNote{
			{Summary: "Routine asthma check-up.", Content: "details"},
		}
		result := summary.Generate(rec, now)
		Expect(result.Text).To(ContainSubstring("Most recent visit focused on routine asthma check-up."))
	})

	It("counts action-required alerts", func() {
		rec.Alerts = []record.Alert{
			{Id: "a1", ActionRequired: true},
			{Id: "a2", ActionRequired: true},
			{Id: "a3", ActionRequired: false},
		}
		result := summary.Generate(rec, now)
		Expect(result.Text).To(ContainSubstring("There are 2 active alerts requiring attention."))
	})

	Describe("insights", func() {
		BeforeEach(func() {
			rec.Patient.FamilyHistory = nil
			rec.Patient.MedicalHistory = nil
			rec.Patient.Medications = nil
			rec.DoctorsNotes = nil
		})

		It("flags a family history of diabetes", func() {
			rec.Patient.FamilyHistory = []string{"Diabetes"}
			result := summary.Generate(rec, now)
			Expect(result.Insights).To(ContainElement(ContainSubstring("blood glucose")))
		})

		It("flags asthma in the medical history", func() {
			rec.Patient.MedicalHistory = []string{"Asthma"}
			result := summary.Generate(rec, now)
			Expect(result.Insights).To(ContainElement(ContainSubstring("asthma action plan")))
		})

		It("flags allergy mentions in recent notes", func() {
			rec.DoctorsNotes = []record.DoctorNote{
				{Content: "patient reports allergy symptoms", Summary: "Allergies."},
			}
			result := summary.Generate(rec, now)
			Expect(result.Insights).To(ContainElement(ContainSubstring("allergy concerns")))
		})

		It("only inspects the two most recent notes", func() {
			rec.DoctorsNotes = []record.DoctorNote{
				{Content: "nothing of note", Summary: "First."},
				{Content: "nothing of note", Summary: "Second."},
				{Content: "allergy mention buried in an old note", Summary: "Third."},
			}
			result := summary.Generate(rec, now)
			Expect(result.Insights).ToNot(ContainElement(ContainSubstring("allergy concerns")))
		})

		It("flags active medications", func() {
			rec.Patient.Medications = []record.Medication{
				{Name: "Albuterol", Active: true},
			}
			result := summary.Generate(rec, now)
			Expect(result.Insights).To(ContainElement(ContainSubstring("Review current medications")))
		})

		It("falls back to the default pair when nothing applies", func() {
			result := summary.Generate(rec, now)
			Expect(result.Insights).To(Equal([]string{
				"Patient appears to be managing conditions well",
				"Continue current treatment plan",
			}))
		})
	})

	It("never references billing data", func() {
		rec.Charges[0].Description = "XRAYCHARGE"
		result := summary.Generate(rec, now)
		Expect(result.Text).ToNot(ContainSubstring("XRAYCHARGE"))
	})
})
