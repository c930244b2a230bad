package record

import (
	"time"

	"github.com/mohae/deepcopy"
)

// PatientRecord is the aggregate root for everything the dashboard shows for
// a single patient. Commands never mutate a record in place; they produce a
// fresh copy so stale references held by other components stay valid.
type PatientRecord struct {
	Patient        Patient         `json:"patient" bson:"patient"`
	Charges        []Charge        `json:"charges" bson:"charges"`
	Events         []Event         `json:"events" bson:"events"`
	DoctorsNotes   []DoctorNote    `json:"doctorsNotes" bson:"doctorsNotes"`
	Memos          []Memo          `json:"memos" bson:"memos"`
	Alerts         []Alert         `json:"alerts" bson:"alerts"`
	PaymentMethods []PaymentMethod `json:"paymentMethods" bson:"paymentMethods"`

	// LastProcessed is bumped by the scheduled payment processor only when a
	// charge was settled, so observers can tell whether a refresh changed
	// anything.
	LastProcessed *time.Time `json:"lastProcessed,omitempty" bson:"lastProcessed,omitempty"`
}

type Patient struct {
	Id                   string        `json:"id" bson:"id"`
	FirstName            string        `json:"firstName" bson:"firstName"`
	LastName             string        `json:"lastName" bson:"lastName"`
	PhoneNumber          string        `json:"phoneNumber" bson:"phoneNumber"`
	Email                string        `json:"email" bson:"email"`
	Address              string        `json:"address" bson:"address"`
	AddressLineTwo       *string       `json:"addressLineTwo,omitempty" bson:"addressLineTwo,omitempty"`
	City                 string        `json:"city" bson:"city"`
	State                string        `json:"state" bson:"state"`
	ZipCode              string        `json:"zipCode" bson:"zipCode"`
	Country              string        `json:"country" bson:"country"`
	AddressValid         bool          `json:"addressValid" bson:"addressValid"`
	GuardianName         *string       `json:"guardianName,omitempty" bson:"guardianName,omitempty"`
	GuardianPhoneNumber  *string       `json:"guardianPhoneNumber,omitempty" bson:"guardianPhoneNumber,omitempty"`
	MaritalStatus        string        `json:"maritalStatus" bson:"maritalStatus"`
	Gender               string        `json:"gender" bson:"gender"`
	EmploymentStatus     string        `json:"employmentStatus" bson:"employmentStatus"`
	DateOfBirth          string        `json:"dateOfBirth" bson:"dateOfBirth"`
	Allergies            []string      `json:"allergies" bson:"allergies"`
	FamilyHistory        []string      `json:"familyHistory" bson:"familyHistory"`
	MedicalHistory       []string      `json:"medicalHistory" bson:"medicalHistory"`
	Prescriptions        []string      `json:"prescriptions" bson:"prescriptions"`
	GoalWeight           float64       `json:"goalWeight" bson:"goalWeight"`
	IsOnboardingComplete bool          `json:"isOnboardingComplete" bson:"isOnboardingComplete"`
	CreatedDate          time.Time     `json:"createdDate" bson:"createdDate"`
	Measurements         []Measurement `json:"measurements" bson:"measurements"`
	Medications          []Medication  `json:"medications" bson:"medications"`
}

type Measurement struct {
	Id        string    `json:"id" bson:"id"`
	PatientId string    `json:"patientId" bson:"patientId"`
	Type      string    `json:"type" bson:"type"`
	Value     string    `json:"value" bson:"value"`
	Unit      string    `json:"unit" bson:"unit"`
	Date      time.Time `json:"date" bson:"date"`
}

type Medication struct {
	Id        string  `json:"id" bson:"id"`
	PatientId string  `json:"patientId" bson:"patientId"`
	Name      string  `json:"name" bson:"name"`
	Dosage    string  `json:"dosage" bson:"dosage"`
	Frequency string  `json:"frequency" bson:"frequency"`
	StartDate string  `json:"startDate" bson:"startDate"`
	EndDate   *string `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Active    bool    `json:"active" bson:"active"`
}

type Provider struct {
	Id         string  `json:"id" bson:"id"`
	FirstName  string  `json:"firstName" bson:"firstName"`
	LastName   string  `json:"lastName" bson:"lastName"`
	Email      string  `json:"email" bson:"email"`
	Title      *string `json:"title,omitempty" bson:"title,omitempty"`
	Department *string `json:"department,omitempty" bson:"department,omitempty"`
	Phone      *string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// PersonRef is the embedded patient or creator reference carried by charges,
// alerts, notes and memos. It is a snapshot, not a live reference.
type PersonRef struct {
	Id          string `json:"id" bson:"id"`
	FirstName   string `json:"firstName" bson:"firstName"`
	LastName    string `json:"lastName" bson:"lastName"`
	Email       string `json:"email" bson:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
}

type DoctorNote struct {
	Id               string    `json:"id" bson:"id"`
	EventId          string    `json:"eventId" bson:"eventId"`
	ParentNoteId     string    `json:"parentNoteId" bson:"parentNoteId"`
	NoteTranscriptId *string   `json:"noteTranscriptId,omitempty" bson:"noteTranscriptId,omitempty"`
	Duration         *int      `json:"duration,omitempty" bson:"duration,omitempty"`
	Version          int       `json:"version" bson:"version"`
	CurrentVersion   int       `json:"currentVersion" bson:"currentVersion"`
	Content          string    `json:"content" bson:"content"`
	Summary          string    `json:"summary" bson:"summary"`
	AiGenerated      bool      `json:"aiGenerated" bson:"aiGenerated"`
	Patient          PersonRef `json:"patient" bson:"patient"`
	CreatedDate      time.Time `json:"createdDate" bson:"createdDate"`
	ProviderNames    []string  `json:"providerNames" bson:"providerNames"`
}

type Memo struct {
	Id          string    `json:"id" bson:"id"`
	Patient     PersonRef `json:"patient" bson:"patient"`
	Note        string    `json:"note" bson:"note"`
	Creator     PersonRef `json:"creator" bson:"creator"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate" bson:"updatedDate"`
}

// Clone produces a deep copy of the record. Handlers clone before computing a
// new aggregate so the caller's snapshot is never touched.
func (r PatientRecord) Clone() PatientRecord {
	return deepcopy.Copy(r).(PatientRecord)
}

// PatientRef returns the snapshot reference embedded in synthesized entities.
func (r PatientRecord) PatientRef() PersonRef {
	return PersonRef{
		Id:          r.Patient.Id,
		FirstName:   r.Patient.FirstName,
		LastName:    r.Patient.LastName,
		Email:       r.Patient.Email,
		PhoneNumber: r.Patient.PhoneNumber,
	}
}

func (r PatientRecord) Charge(id string) (Charge, bool) {
	for _, c := range r.Charges {
		if c.Id == id {
			return c, true
		}
	}
	return Charge{}, false
}

func (r PatientRecord) Event(id string) (Event, bool) {
	for _, e := range r.Events {
		if e.Id == id {
			return e, true
		}
	}
	return Event{}, false
}

func (r PatientRecord) PaymentMethod(id string) (PaymentMethod, bool) {
	for _, pm := range r.PaymentMethods {
		if pm.Id == id {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

func (r PatientRecord) DefaultPaymentMethod() (PaymentMethod, bool) {
	for _, pm := range r.PaymentMethods {
		if pm.IsDefault {
			return pm, true
		}
	}
	return PaymentMethod{}, false
}

// TotalOutstanding sums the outstanding balance over all charges.
func (r PatientRecord) TotalOutstanding() float64 {
	var sum float64
	for _, c := range r.Charges {
		sum += c.TotalOutstanding
	}
	return sum
}
