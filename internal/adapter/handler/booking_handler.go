package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/ferry_booking/internal/core/domain"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/srgjo27/ferry_booking/internal/platform/metrics"
)

// BookingHandler exposes the booking wizard, one wizard per session. Every
// intent answers with the session snapshot.
type BookingHandler struct {
	sessions *services.SessionStore
	metrics  *metrics.Metrics
	log      logger.Logger
}

func NewBookingHandler(sessions *services.SessionStore, m *metrics.Metrics, log logger.Logger) *BookingHandler {
	return &BookingHandler{sessions: sessions, metrics: m, log: log}
}

type sessionResponse struct {
	SessionID string                  `json:"sessionId"`
	Session   services.WizardSnapshot `json:"session"`
}

func (h *BookingHandler) CreateSession(c *gin.Context) {
	id, snap := h.sessions.Create()
	c.JSON(http.StatusCreated, sessionResponse{SessionID: id.String(), Session: snap})
}

func (h *BookingHandler) GetSession(c *gin.Context) {
	h.intent("snapshot", func(*gin.Context, *services.Wizard) error { return nil })(c)
}

func (h *BookingHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) SubmitSearch(c *gin.Context) {
	h.intent("search", func(c *gin.Context, w *services.Wizard) error {
		var req services.SearchRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		err := w.SubmitSearch(c.Request.Context(), req)
		recordSearch(h.metrics, err)
		return err
	})(c)
}

func (h *BookingHandler) SortResults(c *gin.Context) {
	h.intent("sort", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			Sort string `json:"sort"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		return w.SortResults(body.Sort)
	})(c)
}

func (h *BookingHandler) FilterResults(c *gin.Context) {
	h.intent("filter", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			SupplierID string `json:"supplierId"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		return w.FilterResults(body.SupplierID)
	})(c)
}

func (h *BookingHandler) SelectSailing(c *gin.Context) {
	h.intent("select", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			SailingID string `json:"sailingId"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		return w.SelectSailing(body.SailingID)
	})(c)
}

func (h *BookingHandler) AddCabin(c *gin.Context) {
	h.intent("add_cabin", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			Label string `json:"label"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		return w.AddCabin(body.Label)
	})(c)
}

func (h *BookingHandler) RemoveCabin(c *gin.Context) {
	h.intent("remove_cabin", func(c *gin.Context, w *services.Wizard) error {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			return domain.InvalidInputError{Field: "index", Msg: "not a number: " + c.Param("index")}
		}
		return w.RemoveCabin(index)
	})(c)
}

func (h *BookingHandler) SetSeats(c *gin.Context) {
	h.intent("seats", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			Count *int `json:"count"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		if body.Count == nil {
			return domain.InvalidInputError{Field: "count", Msg: "is required"}
		}
		return w.SetSeatCount(*body.Count)
	})(c)
}

func (h *BookingHandler) SetInsurance(c *gin.Context) {
	h.intent("insurance", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			Choice domain.InsuranceChoice `json:"choice"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}
		return w.SetInsurance(body.Choice)
	})(c)
}

func (h *BookingHandler) ContinueToPassengers(c *gin.Context) {
	h.intent("continue", func(_ *gin.Context, w *services.Wizard) error {
		return w.ContinueToPassengers()
	})(c)
}

func (h *BookingHandler) SubmitPassengers(c *gin.Context) {
	h.intent("passengers", func(c *gin.Context, w *services.Wizard) error {
		var form services.PassengerForm
		if err := bind(c, &form); err != nil {
			return err
		}
		return w.SubmitPassengers(form)
	})(c)
}

func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	h.intent("payment", func(c *gin.Context, w *services.Wizard) error {
		var body struct {
			Method string `json:"method"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}

		confirmation, err := w.ConfirmPayment(body.Method)
		if err != nil {
			return err
		}

		h.metrics.BookingsConfirmed.Inc()
		h.log.Info("Booking confirmed",
			"reference", confirmation.Reference.String(),
			"sailing_id", confirmation.Draft.Sailing.SailingID,
			"total", confirmation.Quote.Total,
			"currency", confirmation.Quote.Currency,
		)
		return nil
	})(c)
}

func (h *BookingHandler) Abandon(c *gin.Context) {
	h.intent("abandon", func(_ *gin.Context, w *services.Wizard) error {
		w.Abandon()
		return nil
	})(c)
}

// intent runs fn under the session lock and answers with the resulting
// snapshot, or with the error when fn rejects the intent.
func (h *BookingHandler) intent(name string, fn func(c *gin.Context, w *services.Wizard) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var snap services.WizardSnapshot

		err := h.sessions.Do(c.Param("id"), func(w *services.Wizard) error {
			if err := fn(c, w); err != nil {
				return err
			}
			snap = w.Snapshot()
			return nil
		})
		if err != nil {
			h.metrics.TransitionsRejected.WithLabelValues(name).Inc()
			writeError(c, h.log, err)
			return
		}

		c.JSON(http.StatusOK, snap)
	}
}

// bind decodes an optional JSON body; an empty body leaves dst as is.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return badBody(err)
	}
	return nil
}
