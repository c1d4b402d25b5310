package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"payment-router/logging"
	"payment-router/models"
	"payment-router/processor"
	"payment-router/service"
)

// Error codes returned in the body of failed payment calls
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_error"
	CodeUnsupportedMethod = "unsupported_method"
	CodeCancelled         = "cancelled"
	CodeInternal          = "internal_error"
)

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	controller *service.PaymentController
	timeout    time.Duration
}

// NewPaymentHandler creates a new payment handler. A positive timeout bounds
// every payment call.
func NewPaymentHandler(controller *service.PaymentController, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		controller: controller,
		timeout:    timeout,
	}
}

// ProcessPayment handles payment processing requests
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	ctx := c.Request.Context()
	span := trace.SpanFromContext(ctx)

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: CodeBadRequest})
		return
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	outcome, err := h.controller.Handle(ctx, &req)
	if err != nil {
		status, body := errorResponse(err)
		logger := logging.WithTraceContext(span)
		logger.Error("Payment processing failed",
			zap.Error(err),
			zap.String("code", body.Code),
			zap.Int("status", status),
		)
		c.JSON(status, body)
		return
	}

	span.AddEvent("payment_processed_successfully")
	c.JSON(http.StatusOK, outcome)
}

// HealthCheck handles health check requests
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func errorResponse(err error) (int, models.ErrorResponse) {
	var (
		verr        *processor.ValidationError
		unsupported *processor.UnsupportedMethodError
	)

	switch {
	case errors.Is(err, service.ErrBadRequest):
		return http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: CodeBadRequest}
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error(), Code: CodeValidation, Fields: verr.Fields}
	case errors.As(err, &unsupported):
		return http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error(), Code: CodeUnsupportedMethod, Discriminator: unsupported.Discriminator}
	case errors.Is(err, processor.ErrCancelled):
		return http.StatusGatewayTimeout, models.ErrorResponse{Error: err.Error(), Code: CodeCancelled}
	default:
		return http.StatusInternalServerError, models.ErrorResponse{Error: "payment processing failed", Code: CodeInternal}
	}
}
