package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
)

// reportingHandler serves the finance dashboard endpoints. Field names in
// these responses stay in Turkish for the clinic UI.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the finance reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	finance := rg.Group("/finance")
	{
		finance.GET("/summary", h.summary)
		finance.GET("/debtors", h.patientDebtors)
		finance.GET("/companies/debts", h.companyDebts)
		finance.GET("/monthly-summary", h.monthlySummary)
	}
}

// summary godoc
// @Summary Finance summary for a date range
// @Description Income, expense and net for the range plus today's totals, pending receivables and overdue count. Defaults to the current month.
// @Tags finance
// @Produce json
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/summary [get]
func (h *reportingHandler) summary(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if params.DateFrom != nil {
		from = *params.DateFrom
	}
	if params.DateTo != nil {
		to = *params.DateTo
	}

	summary, err := h.reportingService.Summary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to compute finance summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// patientDebtors godoc
// @Summary List patients with outstanding debt
// @Description Patients whose billed income exceeds their payments by at least min_debt, largest balance first.
// @Tags finance
// @Produce json
// @Param min_debt query number false "Minimum outstanding balance" default(0)
// @Success 200 {array} dto.PatientDebtResponse
// @Security BearerAuth
// @Router /finance/debtors [get]
func (h *reportingHandler) patientDebtors(c *gin.Context) {
	var params dto.DebtorsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	debtors, err := h.reportingService.DebtorsByPatient(c.Request.Context(), params.MinDebt)
	if err != nil {
		respondError(c, err, "Failed to list patient debtors")
		return
	}

	c.JSON(http.StatusOK, dto.ToPatientDebtResponses(debtors))
}

// companyDebts godoc
// @Summary List outstanding payables per supplier company
// @Tags finance
// @Produce json
// @Success 200 {array} dto.CompanyDebtResponse
// @Security BearerAuth
// @Router /finance/companies/debts [get]
func (h *reportingHandler) companyDebts(c *gin.Context) {
	debts, err := h.reportingService.DebtByCompany(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list company debts")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDebtResponses(debts))
}

// monthlySummary godoc
// @Summary Monthly income/expense buckets
// @Description One bucket per month for the last N months, oldest first. Months without transactions appear with zero totals.
// @Tags finance
// @Produce json
// @Param months query int false "How many months back" default(12)
// @Success 200 {array} dto.MonthlySummaryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /finance/monthly-summary [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.MonthlySummary(c.Request.Context(), params.MonthsBack)
	if err != nil {
		respondError(c, err, "Failed to compute monthly summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponses(rows))
}
