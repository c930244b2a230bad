package record

import "time"

type EventStatus string

const (
	EventStatusConfirmed   EventStatus = "CONFIRMED"
	EventStatusRescheduled EventStatus = "RESCHEDULED"
	EventStatusCancelled   EventStatus = "CANCELLED"
	EventStatusCompleted   EventStatus = "COMPLETED"
)

type Event struct {
	Id            string       `json:"id" bson:"id"`
	Title         string       `json:"title" bson:"title"`
	Organizer     PersonRef    `json:"organizer" bson:"organizer"`
	Start         time.Time    `json:"start" bson:"start"`
	End           time.Time    `json:"end" bson:"end"`
	Type          string       `json:"type" bson:"type"`
	Status        EventStatus  `json:"status" bson:"status"`
	MeetingLink   *string      `json:"meetingLink,omitempty" bson:"meetingLink,omitempty"`
	Attendees     []Attendee   `json:"attendees" bson:"attendees"`
	Location      Location     `json:"location" bson:"location"`
	FormCompleted bool         `json:"formCompleted" bson:"formCompleted"`
	Appointment   *Appointment `json:"appointment,omitempty" bson:"appointment,omitempty"`
}

type Attendee struct {
	User         PersonRef `json:"user" bson:"user"`
	InviteStatus string    `json:"inviteStatus" bson:"inviteStatus"`
}

type Location struct {
	Id          string  `json:"id" bson:"id"`
	Name        string  `json:"name" bson:"name"`
	Address     string  `json:"address" bson:"address"`
	City        string  `json:"city" bson:"city"`
	State       string  `json:"state" bson:"state"`
	ZipCode     string  `json:"zipCode" bson:"zipCode"`
	Country     string  `json:"country" bson:"country"`
	IsVirtual   bool    `json:"isVirtual" bson:"isVirtual"`
	MeetingLink *string `json:"meetingLink,omitempty" bson:"meetingLink,omitempty"`
}

type Appointment struct {
	Id                 string     `json:"id" bson:"id"`
	EventId            string     `json:"eventId" bson:"eventId"`
	PatientId          string     `json:"patientId" bson:"patientId"`
	ProviderId         string     `json:"providerId" bson:"providerId"`
	Reason             string     `json:"reason" bson:"reason"`
	ConfirmationStatus string     `json:"confirmationStatus" bson:"confirmationStatus"`
	ConfirmationDate   time.Time  `json:"confirmationDate" bson:"confirmationDate"`
	CheckedInDate      *time.Time `json:"checkedInDate,omitempty" bson:"checkedInDate,omitempty"`
	AppointmentType    string     `json:"appointmentType" bson:"appointmentType"`
}

// IsTerminal reports whether the status permits no further transitions.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCompleted || s == EventStatusCancelled
}

// CanModify reports whether the event may still be rescheduled or cancelled:
// it must start in the future and must not be in a terminal status.
func (e Event) CanModify(now time.Time) bool {
	return e.Start.After(now) && !e.Status.IsTerminal()
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// IsUpcoming reports whether the event starts within the given window from
// now and is still expected to happen.
func (e Event) IsUpcoming(now time.Time, window time.Duration) bool {
	if e.Status != EventStatusConfirmed && e.Status != EventStatusRescheduled {
		return false
	}
	return !e.Start.Before(now) && !e.Start.After(now.Add(window))
}
