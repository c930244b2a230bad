package record

import (
	"fmt"
	"time"
)

type ChargeStatus string

const (
	ChargeStatusUnpaid        ChargeStatus = "UNPAID"
	ChargeStatusPartiallyPaid ChargeStatus = "PARTIALLY_PAID"
	ChargeStatusPaid          ChargeStatus = "PAID"
)

type PaymentMedium string

const (
	PaymentMediumCard             PaymentMedium = "CARD"
	PaymentMediumScheduledAutoPay PaymentMedium = "SCHEDULED_AUTO_PAY"
)

type Charge struct {
	Id               string           `json:"id" bson:"id"`
	Total            float64          `json:"total" bson:"total"`
	TotalOutstanding float64          `json:"totalOutstanding" bson:"totalOutstanding"`
	Description      string           `json:"description" bson:"description"`
	Status           ChargeStatus     `json:"status" bson:"status"`
	Patient          PersonRef        `json:"patient" bson:"patient"`
	CreatedDate      time.Time        `json:"createdDate" bson:"createdDate"`
	Creator          PersonRef        `json:"creator" bson:"creator"`
	Adjustments      []Adjustment     `json:"adjustments" bson:"adjustments"`
	Payments         []Payment        `json:"payments" bson:"payments"`
	PlannedPayments  []PlannedPayment `json:"plannedPayments" bson:"plannedPayments"`
	Comment          *string          `json:"comment,omitempty" bson:"comment,omitempty"`
	Items            []ChargeItem     `json:"items" bson:"items"`
	LocationId       *string          `json:"locationId,omitempty" bson:"locationId,omitempty"`
	LocationName     *string          `json:"locationName,omitempty" bson:"locationName,omitempty"`

	// Scheduling fields are mutually present or mutually absent. A charge
	// with a scheduled payment is ineligible for scheduling another until the
	// fields are cleared by processing or cancellation.
	ScheduledPaymentDate   *time.Time     `json:"scheduledPaymentDate,omitempty" bson:"scheduledPaymentDate,omitempty"`
	ScheduledPaymentAmount *float64       `json:"scheduledPaymentAmount,omitempty" bson:"scheduledPaymentAmount,omitempty"`
	ScheduledPaymentMethod *PaymentMethod `json:"scheduledPaymentMethod,omitempty" bson:"scheduledPaymentMethod,omitempty"`
	AutoPayEnabled         *bool          `json:"autoPayEnabled,omitempty" bson:"autoPayEnabled,omitempty"`
}

type Payment struct {
	Id          string    `json:"id" bson:"id"`
	Amount      float64   `json:"amount" bson:"amount"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`

	// Snapshot of the method used, not a reference into PaymentMethods.
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	PaymentMedium PaymentMedium  `json:"paymentMedium" bson:"paymentMedium"`
	Refunds       []Refund       `json:"refunds" bson:"refunds"`
}

type Refund struct {
	Id          string    `json:"id" bson:"id"`
	Amount      float64   `json:"amount" bson:"amount"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`
}

type PlannedPayment struct {
	Id          string    `json:"id" bson:"id"`
	Amount      float64   `json:"amount" bson:"amount"`
	PaymentDate time.Time `json:"paymentDate" bson:"paymentDate"`
	Status      string    `json:"status" bson:"status"`
}

type Adjustment struct {
	Id          string    `json:"id" bson:"id"`
	ChargeId    string    `json:"chargeId" bson:"chargeId"`
	Amount      float64   `json:"amount" bson:"amount"`
	Type        string    `json:"type" bson:"type"`
	Description string    `json:"description" bson:"description"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`
}

type ChargeItem struct {
	ItemId   string `json:"item_id" bson:"itemId"`
	ChargeId string `json:"charge_id" bson:"chargeId"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Item     Item   `json:"item" bson:"item"`
}

type Item struct {
	Id          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Active      bool      `json:"active" bson:"active"`
	CreatedDate time.Time `json:"createdDate" bson:"createdDate"`
	Category    string    `json:"category" bson:"category"`
}

type PaymentMethod struct {
	Id                 string  `json:"id" bson:"id"`
	PatientId          string  `json:"patientId" bson:"patientId"`
	Brand              *string `json:"brand,omitempty" bson:"brand,omitempty"`
	Last4              *string `json:"last4,omitempty" bson:"last4,omitempty"`
	ExpMonth           *int    `json:"expMonth,omitempty" bson:"expMonth,omitempty"`
	ExpYear            *int    `json:"expYear,omitempty" bson:"expYear,omitempty"`
	AccountHolderType  *string `json:"accountHolderType,omitempty" bson:"accountHolderType,omitempty"`
	AccountNumberLast4 *int    `json:"accountNumberLast4,omitempty" bson:"accountNumberLast4,omitempty"`
	BankName           *string `json:"bankName,omitempty" bson:"bankName,omitempty"`
	RoutingNumber      *int    `json:"routingNumber,omitempty" bson:"routingNumber,omitempty"`
	Description        string  `json:"description" bson:"description"`
	Type               string  `json:"type" bson:"type"`
	IsDefault          bool    `json:"isDefault" bson:"isDefault"`
}

// DeriveChargeStatus is the single source of truth for a charge's status.
// Status must never be set inconsistently with the outstanding balance.
func DeriveChargeStatus(outstanding, total float64) ChargeStatus {
	switch {
	case outstanding <= 0:
		return ChargeStatusPaid
	case outstanding < total:
		return ChargeStatusPartiallyPaid
	default:
		return ChargeStatusUnpaid
	}
}

func (c Charge) HasScheduledPayment() bool {
	return c.ScheduledPaymentDate != nil
}

func (c Charge) AutoPay() bool {
	return c.AutoPayEnabled != nil && *c.AutoPayEnabled
}

func (c Charge) HasOutstandingBalance() bool {
	return c.TotalOutstanding > 0
}

func (c Charge) HasPaymentPlan() bool {
	return len(c.PlannedPayments) > 0
}

// AppendComment adds a bracketed note after any existing comment text.
func AppendComment(comment *string, note string) *string {
	if comment == nil || *comment == "" {
		return &note
	}
	combined := fmt.Sprintf("%s [%s]", *comment, note)
	return &combined
}
