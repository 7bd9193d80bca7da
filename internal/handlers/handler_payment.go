package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// RegisterPaymentRoutes registers payment routes under a company-scoped group.
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Stores the payment and applies it to the customer's open debts in the same currency, oldest due date first
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentAllocationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Company or customer not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /companies/{company_id}/payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	caller, ok := middleware.GetCallerFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", companyID), slog.String("customer_id", req.CustomerID))
	logger.Info("Received request to record payment", slog.String("amount", req.Amount.String()), slog.String("currency", req.Currency))

	res, err := h.paymentService.RecordPayment(c.Request.Context(), caller, companyID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment", nil)
		return
	}

	logger.Info("Payment recorded successfully", slog.String("payment_id", res.Payment.PaymentID))
	c.JSON(http.StatusCreated, dto.ToPaymentAllocationResponse(res))
}
