package record

import "time"

const (
	AlertTypeOutstandingBalance   = "OUTSTANDING_BALANCE"
	AlertTypeFormSubmitted        = "FORM_SUBMITTED"
	AlertTypeAppointmentScheduled = "APPOINTMENT_SCHEDULED"
	AlertTypeMessageReceived      = "MESSAGE_RECEIVED"
)

type Alert struct {
	Id                string     `json:"id" bson:"id"`
	Type              string     `json:"type" bson:"type"`
	Data              AlertData  `json:"data" bson:"data"`
	CreatedDate       time.Time  `json:"createdDate" bson:"createdDate"`
	ActionRequired    bool       `json:"actionRequired" bson:"actionRequired"`
	ResolvedDate      *time.Time `json:"resolvedDate,omitempty" bson:"resolvedDate,omitempty"`
	Tags              []AlertTag `json:"tags" bson:"tags"`
	AssignedProvider  Provider   `json:"assignedProvider" bson:"assignedProvider"`
	ResolvingProvider *Provider  `json:"resolvingProvider,omitempty" bson:"resolvingProvider,omitempty"`
	Occurrences       int        `json:"occurances" bson:"occurances"`
	Patient           PersonRef  `json:"patient" bson:"patient"`
}

type AlertTag struct {
	Id   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// AlertData carries the type-specific payload. Only the fields relevant to
// the alert's type are populated.
type AlertData struct {
	TotalOutstanding     *float64         `json:"totalOutstanding,omitempty" bson:"totalOutstanding,omitempty"`
	Charges              []AlertChargeRef `json:"charges,omitempty" bson:"charges,omitempty"`
	PaymentPlanAvailable *bool            `json:"paymentPlanAvailable,omitempty" bson:"paymentPlanAvailable,omitempty"`
	Message              *string          `json:"message,omitempty" bson:"message,omitempty"`
	Name                 *string          `json:"name,omitempty" bson:"name,omitempty"`
	EventId              *string          `json:"eventId,omitempty" bson:"eventId,omitempty"`
	SubmittedAt          *time.Time       `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
}

type AlertChargeRef struct {
	Id          string    `json:"id" bson:"id"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
	DueDate     time.Time `json:"dueDate" bson:"dueDate"`
}

// ReferencedChargeIds returns the charge ids an outstanding-balance alert
// points at. Empty for other alert types.
func (a Alert) ReferencedChargeIds() []string {
	ids := make([]string, 0, len(a.Data.Charges))
	for _, ref := range a.Data.Charges {
		ids = append(ids, ref.Id)
	}
	return ids
}
