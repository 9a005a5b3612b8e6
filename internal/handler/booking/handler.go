package booking

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bazabarbershop/baza/backend/internal/model/catalog"
	bookingService "github.com/bazabarbershop/baza/backend/internal/service/booking"
	"github.com/bazabarbershop/baza/backend/pkg/utils"
)

const (
	networkErrorMessage = "Network error. Please try again."
	maxFormMemory       = 1 << 20
)

// Submitter forwards a validated booking.
type Submitter interface {
	Submit(ctx context.Context, b bookingService.Booking) (bookingService.Result, error)
}

// Handler 预约表单处理器
type Handler struct {
	submitter Submitter
	services  catalog.Store
	now       func() time.Time
	logger    *zap.Logger
}

// New 创建预约处理器；submitter 为 nil 时端点返回 503。
func New(submitter Submitter, services catalog.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		submitter: submitter,
		services:  services,
		now:       time.Now,
		logger:    logger.Named("booking"),
	}
}

// RegisterRoutes 注册预约路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/booking", h.handleBooking)
	r.Get("/booking/slots", h.handleSlots)
}

// handleSlots 返回可预约时段
func (h *Handler) handleSlots(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, bookingService.Slots())
}

// handleBooking 校验并转发预约表单
func (h *Handler) handleBooking(w http.ResponseWriter, r *http.Request) {
	if h.submitter == nil {
		utils.RespondJSON(w, http.StatusServiceUnavailable, bookingService.Result{
			Success: false,
			Message: "booking is not configured",
		})
		return
	}

	b, err := decodeBooking(r)
	if err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, bookingService.Result{Success: false, Message: "invalid request body"})
		return
	}

	b.Normalize()
	if err := h.validate(b); err != nil {
		utils.RespondJSON(w, http.StatusBadRequest, bookingService.Result{Success: false, Message: err.Error()})
		return
	}

	result, err := h.submitter.Submit(r.Context(), b)
	if err != nil {
		h.logger.Warn("booking relay failed", zap.Error(err))
		utils.RespondJSON(w, http.StatusBadGateway, bookingService.Result{Success: false, Message: networkErrorMessage})
		return
	}
	if !result.Success {
		utils.RespondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	h.logger.Info("booking relayed", zap.String("date", b.Date), zap.String("time", b.Time))
	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) validate(b bookingService.Booking) error {
	if err := b.Validate(h.now()); err != nil {
		return err
	}
	if b.Service == "" || h.services == nil {
		return nil
	}
	if _, ok := h.services.FindByName(b.Service); ok {
		return nil
	}
	if _, ok := h.services.FindByID(b.Service); ok {
		return nil
	}
	return &bookingService.ValidationError{Field: "service", Reason: "unknown service"}
}

// decodeBooking accepts the site form as JSON, urlencoded or multipart data.
func decodeBooking(r *http.Request) (bookingService.Booking, error) {
	var b bookingService.Booking

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return b, err
		}
		b = bookingService.Booking{
			Name:    r.FormValue("name"),
			Phone:   r.FormValue("phone"),
			Service: r.FormValue("service"),
			Date:    r.FormValue("date"),
			Time:    r.FormValue("time"),
			Message: r.FormValue("message"),
		}
		return b, nil
	default:
		err := utils.DecodeJSON(r, &b)
		return b, err
	}
}
