package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for bulk debt reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// RegisterReconciliationRoutes registers the analyze/commit routes under a company-scoped group.
func RegisterReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.POST("/analyze", h.analyze)
		reconciliation.POST("/commit", h.commit)
	}
}

// analyze godoc
// @Summary Preview a bulk reconciliation
// @Description Classifies every row as create, update, skip or error and lists the open debts that would be deleted. Nothing is written.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   request body dto.AnalyzeRequest true "Complete list of open debts"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation error"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Failed to analyze rows"
// @Security BearerAuth
// @Router /companies/{company_id}/reconciliation/analyze [post]
func (h *reconciliationHandler) analyze(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	caller, ok := middleware.GetCallerFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Analyze", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to analyze reconciliation", slog.Int("rows", len(req.Rows)))

	plan, err := h.reconciliationService.Analyze(c.Request.Context(), caller, companyID, dto.ToDomainRows(req.Rows))
	if err != nil {
		respondError(c, logger, err, "Failed to analyze rows", gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyzeResponse(plan))
}

// commit godoc
// @Summary Apply a bulk reconciliation
// @Description Re-analyzes the rows against current data and applies creates, updates and deletions. Not atomic: failed rows are reported in errors while the others stay applied.
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   request body dto.CommitRequest true "Rows of the approved analysis and its fingerprint"
// @Success 200 {object} dto.CommitResponse "Commit finished; check success and errors"
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation error"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 403 {object} map[string]interface{} "Caller may not commit"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 409 {object} map[string]interface{} "Data changed since analysis"
// @Failure 500 {object} map[string]interface{} "Failed to commit rows"
// @Security BearerAuth
// @Router /companies/{company_id}/reconciliation/commit [post]
func (h *reconciliationHandler) commit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	caller, ok := middleware.GetCallerFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Commit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("company_id", companyID))
	logger.Info("Received request to commit reconciliation", slog.Int("rows", len(req.Rows)), slog.Bool("fingerprinted", req.Fingerprint != ""))

	res, err := h.reconciliationService.Commit(c.Request.Context(), caller, companyID, dto.ToDomainRows(req.Rows), req.Fingerprint)
	if err != nil {
		respondError(c, logger, err, "Failed to commit rows", gin.H{"success": false})
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitResponse(res))
}
