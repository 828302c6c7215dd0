package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/bizledger/bizops_backend/internal/core/ports/services"
	"github.com/bizledger/bizops_backend/internal/dto"
	"github.com/bizledger/bizops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for profit and loss reporting.
type statementHandler struct {
	statementService portssvc.StatementService
}

func newStatementHandler(ss portssvc.StatementService) *statementHandler {
	return &statementHandler{
		statementService: ss,
	}
}

// registerStatementRoutes registers the reporting routes.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementService) {
	h := newStatementHandler(statementService)

	reports := rg.Group("/reports")
	{
		reports.GET("/profit-and-loss", h.getProfitAndLoss)
	}
}

// getProfitAndLoss godoc
// @Summary Get a profit and loss statement
// @Description Builds the statement for the range, optionally with a per-month breakdown and previous-period comparison
// @Tags reports
// @Produce  json
// @Param   from query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param   to query string true "Range end (YYYY-MM-DD or RFC3339)"
// @Param   includeMonthly query bool false "Attach the monthly breakdown"
// @Param   includeComparison query bool false "Attach the previous-period comparison"
// @Success 200 {object} dto.ProfitAndLossResponse
// @Failure 400 {object} map[string]string "Missing or malformed range"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Router /reports/profit-and-loss [get]
func (h *statementHandler) getProfitAndLoss(c *gin.Context) {
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
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'to' date must not precede 'from' date"})
		return
	}

	includeMonthly, _ := strconv.ParseBool(c.DefaultQuery("includeMonthly", "false"))
	includeComparison, _ := strconv.ParseBool(c.DefaultQuery("includeComparison", "false"))

	statement, err := h.statementService.ProfitAndLoss(c.Request.Context(), from, to, includeMonthly, includeComparison)
	if err != nil {
		logger.Error("Failed to build profit and loss statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(statement, from, to))
}
