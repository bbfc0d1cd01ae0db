package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportQueries queries.ReportQueries
	loc           *time.Location
}

func NewReportHandler(reportQueries queries.ReportQueries, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		reportQueries: reportQueries,
		loc:           loc,
	}
}

// parseDateRange reads start/end query params as YYYY-MM-DD, inclusive of
// the whole end day.
func (h *ReportHandler) parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "start must be a YYYY-MM-DD date",
		})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "end must be a YYYY-MM-DD date",
		})
		return time.Time{}, time.Time{}, false
	}
	return start, end.AddDate(0, 0, 1).Add(-time.Second), true
}

func (h *ReportHandler) renderReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errors.Is(err, queries.ErrInvalidBucket):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "bucket must be one of day, week, month",
		})
	case errs.Is(err, errs.ErrStationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Fuel station not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Fuel consumption report
// @Description Totals, peak day, and most active station over a date range
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param fuel_type query string false "Filter by fuel type"
// @Success 200 {object} analytics.ConsumptionReport
// @Failure 400 {object} map[string]string
// @Router /reports/consumption [get]
func (h *ReportHandler) Consumption(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	var fuelFilter *vehicle.FuelType
	if raw := c.Query("fuel_type"); raw != "" {
		ft, err := vehicle.NewFuelType(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid fuel type",
			})
			return
		}
		fuelFilter = &ft
	}

	report, err := h.reportQueries.Consumption(c.Request.Context(), start, end, fuelFilter)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Station performance report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} analytics.StationPerformanceReport
// @Failure 400 {object} map[string]string
// @Router /reports/stations [get]
func (h *ReportHandler) StationPerformance(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.reportQueries.StationPerformance(c.Request.Context(), start, end)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Single station statistics
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} analytics.StationStats
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reports/stations/{id} [get]
func (h *ReportHandler) StationStats(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	stats, err := h.reportQueries.StationStats(c.Request.Context(), stationID, start, end)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Top fuel consumers
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Number of consumers (default 10)"
// @Success 200 {array} analytics.TopConsumer
// @Failure 400 {object} map[string]string
// @Router /reports/top-consumers [get]
func (h *ReportHandler) TopConsumers(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	consumers, err := h.reportQueries.TopConsumers(c.Request.Context(), limit, start, end)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, consumers)
}

// @Summary Usage trends
// @Description Bucketed fuel usage over a date range, including zero buckets
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Param bucket query string false "day|week|month (default day)"
// @Success 200 {array} analytics.TrendPoint
// @Failure 400 {object} map[string]string
// @Router /reports/trends [get]
func (h *ReportHandler) UsageTrends(c *gin.Context) {
	start, end, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	bucket := analytics.BucketDay
	if raw := c.Query("bucket"); raw != "" {
		bucket = analytics.Bucket(raw)
	}

	points, err := h.reportQueries.UsageTrends(c.Request.Context(), start, end, bucket)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// @Summary Quota utilization report
// @Description Entitlement versus usage for the month containing the given date
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query string false "Any date in the target month (YYYY-MM-DD, default today)"
// @Success 200 {object} queries.UtilizationReport
// @Failure 400 {object} map[string]string
// @Router /reports/utilization [get]
func (h *ReportHandler) Utilization(c *gin.Context) {
	month := time.Now().In(h.loc)
	if raw := c.Query("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "month must be a YYYY-MM-DD date",
			})
			return
		}
		month = parsed
	}

	report, err := h.reportQueries.Utilization(c.Request.Context(), month)
	if err != nil {
		h.renderReportError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
