package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizledger/bizops_backend/internal/apperrors"
	"github.com/bizledger/bizops_backend/internal/core/domain"
	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/dto"
	"github.com/bizledger/bizops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for ledger entries and metrics.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers routes related to ledger entries.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newLedgerHandler(ledgerService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/validate", h.validateEntry)
		entries.GET("/:id", h.getEntry)
		entries.GET("", h.listEntries)
	}
	rg.GET("/metrics", h.getMetrics)
}

// createEntry godoc
// @Summary Create a ledger entry
// @Description Validates a draft entry and posts it to the ledger atomically
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or field validation errors"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.ledgerService.CreateEntry(c.Request.Context(), req, requestUserID(c))
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
		} else {
			logger.Error("Failed to create ledger entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// validateEntry godoc
// @Summary Validate a draft entry
// @Description Dry-run validation returning every field problem at once, without posting anything
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Draft entry"
// @Success 200 {object} dto.ValidateEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Router /entries/validate [post]
func (h *ledgerHandler) validateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fieldErrs := h.ledgerService.ValidateDraft(req.ToDraftEntry())
	c.JSON(http.StatusOK, dto.ValidateEntryResponse{
		Valid:  len(fieldErrs) == 0,
		Errors: fieldErrs,
	})
}

// getEntry godoc
// @Summary Get a ledger entry by ID
// @Description Retrieves an entry together with all of its lines
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.GetEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /entries/{id} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, lines, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		} else {
			logger.Error("Failed to get ledger entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.GetEntryResponse{
		Entry: dto.ToLedgerEntryResponse(entry),
		Lines: dto.ToLedgerLineResponses(lines),
	})
}

// listEntries godoc
// @Summary List ledger entries
// @Description Retrieves posted entries for a date range, newest first, with token-based pagination
// @Tags entries
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param   to query string true "Range end (YYYY-MM-DD or RFC3339)"
// @Param   referenceType query string false "Filter by reference type"
// @Param   accountID query string false "Filter by account appearing on a line"
// @Param   limit query int false "Max entries per page"
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Missing or malformed range"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'from' date"})
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'to' date"})
		return
	}

	var filter *domain.EntryFilter
	if refType := c.Query("referenceType"); refType != "" {
		ref := domain.ReferenceType(refType)
		filter = &domain.EntryFilter{ReferenceType: &ref}
	}
	if accountID := c.Query("accountID"); accountID != "" {
		if filter == nil {
			filter = &domain.EntryFilter{}
		}
		filter.AccountID = &accountID
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	entries, newNextToken, err := h.ledgerService.ListEntries(c.Request.Context(), from, to, filter, limit, nextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == 400 {
			c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: newNextToken,
	})
}

// getMetrics godoc
// @Summary Get financial metrics
// @Description Retrieves the aggregate dashboard figures for a date range
// @Tags metrics
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param   to query string true "Range end (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} dto.MetricsResponse
// @Failure 400 {object} map[string]string "Missing or malformed range"
// @Failure 500 {object} map[string]string "Failed to retrieve metrics"
// @Router /metrics [get]
func (h *ledgerHandler) getMetrics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := parseDateParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'from' date"})
		return
	}
	to, err := parseDateParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing 'to' date"})
		return
	}

	metrics, err := h.ledgerService.GetFinancialMetrics(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to retrieve financial metrics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve metrics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMetricsResponse(metrics, from, to))
}
