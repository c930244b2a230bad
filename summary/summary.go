package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/decodahealth/patient-record/record"
)

// Summary is a templated narrative over the non-financial slice of the
// aggregate. Charges, payments and payment methods never feed into it.
type Summary struct {
	Text     string   `json:"text"`
	Insights []string `json:"insights"`
}

const dateOfBirthLayout = "2006-01-02"

// Generate renders the patient summary and its insight list. Pure templating,
// no model call behind it.
func Generate(rec record.PatientRecord, now time.Time) Summary {
	patient := rec.Patient

	history := "no significant conditions"
	if len(patient.MedicalHistory) > 0 {
		history = strings.Join(patient.MedicalHistory, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s is a %d-year-old %s patient with a medical history of %s. ",
		patient.FirstName, patient.LastName, age(patient.DateOfBirth, now),
		strings.ToLower(patient.Gender), history)

	if len(patient.Allergies) > 0 {
		fmt.Fprintf(&b, "Known allergies include %s. ", strings.Join(patient.Allergies, ", "))
	}

	recentNotes := rec.DoctorsNotes
	if len(recentNotes) > 2 {
		recentNotes = recentNotes[:2]
	}
	if len(recentNotes) > 0 {
		fmt.Fprintf(&b, "Most recent visit focused on %s. ", strings.ToLower(recentNotes[0].Summary))
	}

	actionRequired := 0
	for _, alert := range rec.Alerts {
		if alert.ActionRequired {
			actionRequired++
		}
	}
	if actionRequired > 0 {
		fmt.Fprintf(&b, "There are %d active alerts requiring attention.", actionRequired)
	}

	return Summary{
		Text:     strings.TrimRight(b.String(), " "),
		Insights: insights(patient, recentNotes),
	}
}

func insights(patient record.Patient, recentNotes []record.DoctorNote) []string {
	var out []string

	if contains(patient.FamilyHistory, "Diabetes") {
		out = append(out, "Monitor blood glucose levels due to family history of diabetes")
	}
	if contains(patient.MedicalHistory, "Asthma") {
		out = append(out, "Ensure asthma action plan is up to date")
	}
	for _, note := range recentNotes {
		if strings.Contains(note.Content, "allergy") {
			out = append(out, "Recent allergy concerns - monitor treatment effectiveness")
			break
		}
	}
	for _, med := range patient.Medications {
		if med.Active {
			out = append(out, "Review current medications for effectiveness and interactions")
			break
		}
	}

	if len(out) == 0 {
		out = append(out,
			"Patient appears to be managing conditions well",
			"Continue current treatment plan")
	}
	return out
}

func age(dateOfBirth string, now time.Time) int {
	born, err := time.Parse(dateOfBirthLayout, dateOfBirth)
	if err != nil {
		return 0
	}
	return now.Year() - born.Year()
}

func contains(values []string, wanted string) bool {
	for _, v := range values {
		if v == wanted {
			return true
		}
	}
	return false
}
