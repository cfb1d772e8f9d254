package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SmartBuket/Smart-Buket-Analyticts/internal/service"
)

// ── Shared error response helper ─────────────────────────────────────────

type errResp struct {
	Error string `json:"error"`
}

func errResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, errResp{Error: msg})
}

func handleSvcError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return errResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return errResponse(c, http.StatusBadRequest, err.Error())
	default:
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
}

// ── Events Handler ────────────────────────────────────────────────────────

type EventsHandler struct{ svc service.IngestService }

func NewEventsHandler(svc service.IngestService) *EventsHandler {
	return &EventsHandler{svc: svc}
}

func (h *EventsHandler) Register(e *echo.Echo) {
	e.POST("/v1/events", h.Ingest)
}

// Ingest accepts a bare JSON array of event documents. Numbers are decoded
// as json.Number so large integer IDs survive the round trip into payloads.
func (h *EventsHandler) Ingest(c echo.Context) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var docs []map[string]any
	if err := dec.Decode(&docs); err != nil {
		return errResponse(c, http.StatusBadRequest, "body must be a non-empty list")
	}

	res, err := h.svc.IngestBatch(c.Request().Context(), docs)
	if err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ── Privacy Handler ───────────────────────────────────────────────────────

type PrivacyHandler struct{ svc service.PrivacyService }

func NewPrivacyHandler(svc service.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{svc: svc}
}

func (h *PrivacyHandler) Register(e *echo.Echo) {
	e.POST("/v1/opt-out", h.OptOut)
	e.POST("/v1/privacy/delete", h.DeleteUserData)
}

type optOutRequest struct {
	AppUUID    string `json:"app_uuid"`
	AnonUserID string `json:"anon_user_id"`
}

func (h *PrivacyHandler) OptOut(c echo.Context) error {
	var input optOutRequest
	if err := c.Bind(&input); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.OptOut(c.Request().Context(), input.AppUUID, input.AnonUserID); err != nil {
		return handleSvcError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type deleteUserDataRequest struct {
	AppUUID      string `json:"app_uuid"`
	AnonUserID   string `json:"anon_user_id"`
	DeleteOptOut bool   `json:"delete_opt_out"`
}

type deleteUserDataResponse struct {
	Status     string            `json:"status"`
	AppUUID    string            `json:"app_uuid"`
	AnonUserID string            `json:"anon_user_id"`
	Deleted    map[string]int64  `json:"deleted"`
	Notes      map[string]string `json:"notes"`
}

func (h *PrivacyHandler) DeleteUserData(c echo.Context) error {
	var input deleteUserDataRequest
	if err := c.Bind(&input); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}

	report, err := h.svc.DeleteUserData(c.Request().Context(), input.AppUUID, input.AnonUserID, input.DeleteOptOut)
	if err != nil {
		return handleSvcError(c, err)
	}

	return c.JSON(http.StatusOK, deleteUserDataResponse{
		Status:     "ok",
		AppUUID:    report.AppUUID,
		AnonUserID: report.AnonUserID,
		Deleted:    report.Deleted,
		Notes: map[string]string{
			"broker":  "Queues are append-only; messages already published are not deleted.",
			"opt_out": "Set delete_opt_out=true to remove the opt_out row; default keeps it.",
		},
	})
}

// ── Health ────────────────────────────────────────────────────────────────

func RegisterHealth(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
