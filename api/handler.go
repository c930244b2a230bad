package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/decodahealth/patient-record/billing"
	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/session"
	"github.com/decodahealth/patient-record/summary"
	"github.com/decodahealth/patient-record/view"
)

type Handler struct {
	sessions session.Manager
}

type Params struct {
	fx.In

	Sessions session.Manager
}

func NewHandler(p Params) *Handler {
	return &Handler{
		sessions: p.Sessions,
	}
}

type SchedulePaymentRequest struct {
	ChargeIds       []string           `json:"chargeIds"`
	Date            string             `json:"date"`
	Time            string             `json:"time"`
	PaymentMethodId string             `json:"paymentMethodId"`
	AutoPayEnabled  bool               `json:"autoPayEnabled"`
	Amounts         map[string]float64 `json:"amounts"`
}

type ChargeNowRequest struct {
	ChargeIds       []string `json:"chargeIds"`
	PaymentMethodId string   `json:"paymentMethodId"`
}

type RescheduleRequest struct {
	NewStart time.Time `json:"newStart"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type AddMemoRequest struct {
	Note string `json:"note"`
}

func (h *Handler) GetRecord(c echo.Context) error {
	snapshot, err := h.sessions.Load(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot.Record)
}

func (h *Handler) GetView(c echo.Context) error {
	snapshot, err := h.sessions.Load(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot.View)
}

func (h *Handler) GetSummary(c echo.Context) error {
	snapshot, err := h.sessions.Load(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary.Generate(snapshot.Record, time.Now()))
}

func (h *Handler) SchedulePayment(c echo.Context) error {
	req := SchedulePaymentRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}

	snapshot, err := h.sessions.SchedulePayment(c.Request().Context(), c.Param("patientId"), billing.SchedulePaymentInput{
		ChargeIds:       req.ChargeIds,
		Date:            req.Date,
		Time:            req.Time,
		PaymentMethodId: req.PaymentMethodId,
		AutoPayEnabled:  req.AutoPayEnabled,
		Amounts:         req.Amounts,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) ChargeNow(c echo.Context) error {
	req := ChargeNowRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}

	snapshot, err := h.sessions.ChargeNow(c.Request().Context(), c.Param("patientId"), billing.ChargeNowInput{
		ChargeIds:       req.ChargeIds,
		PaymentMethodId: req.PaymentMethodId,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) RescheduleAppointment(c echo.Context) error {
	req := RescheduleRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: newStart is required", errors.BadRequest)
	}

	snapshot, err := h.sessions.RescheduleAppointment(c.Request().Context(), c.Param("patientId"), c.Param("eventId"), req.NewStart)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	req := CancelRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}

	snapshot, err := h.sessions.CancelAppointment(c.Request().Context(), c.Param("patientId"), c.Param("eventId"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) AddMemo(c echo.Context) error {
	req := AddMemoRequest{}
	if err := c.Bind(&req); err != nil {
		return err
	}

	snapshot, err := h.sessions.AddMemo(c.Request().Context(), c.Param("patientId"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) DismissAlert(c echo.Context) error {
	snapshot, err := h.sessions.DismissAlert(c.Request().Context(), c.Param("patientId"), c.Param("alertId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) ToggleSection(c echo.Context) error {
	section := view.Section(c.Param("section"))
	if !validSection(section) {
		return fmt.Errorf("%w: unknown section %s", errors.BadRequest, section)
	}

	snapshot, err := h.sessions.ToggleSection(c.Request().Context(), c.Param("patientId"), section)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) MarkSummaryViewed(c echo.Context) error {
	snapshot, err := h.sessions.MarkSummaryViewed(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) Refresh(c echo.Context) error {
	snapshot, err := h.sessions.Refresh(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshot)
}

func validSection(section view.Section) bool {
	for _, s := range view.Sections() {
		if s == section {
			return true
		}
	}
	return false
}
