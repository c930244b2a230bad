package api

import (
	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/decodahealth/patient-record/errors"
)

func NewServer(handler *Handler, healthCheck *HealthCheck, logger *zap.Logger) (*echo.Echo, error) {
	e := echo.New()

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(logger))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

func RegisterHandlers(e *echo.Echo, handler *Handler) {
	g := e.Group("/v1/patients/:patientId")

	g.GET("/record", handler.GetRecord)
	g.GET("/view", handler.GetView)
	g.GET("/summary", handler.GetSummary)

	g.POST("/payments/schedule", handler.SchedulePayment)
	g.POST("/payments/charge", handler.ChargeNow)
	g.POST("/appointments/:eventId/reschedule", handler.RescheduleAppointment)
	g.POST("/appointments/:eventId/cancel", handler.CancelAppointment)
	g.POST("/memos", handler.AddMemo)

	g.POST("/alerts/:alertId/dismiss", handler.DismissAlert)
	g.POST("/sections/:section/toggle", handler.ToggleSection)
	g.POST("/summary/viewed", handler.MarkSummaryViewed)
	g.POST("/refresh", handler.Refresh)
}
