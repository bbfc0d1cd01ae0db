package api

import (
	"errors"
	"net/http"

	"fuel-quota-service/internal/domain/vehicle"
	reqdto "fuel-quota-service/internal/handler/dto/request"
	resdto "fuel-quota-service/internal/handler/dto/response"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuotaHandler struct {
	quotaQueries  queries.QuotaQueries
	quotaCommands commands.QuotaCommands
}

func NewQuotaHandler(quotaQueries queries.QuotaQueries, quotaCommands commands.QuotaCommands) *QuotaHandler {
	return &QuotaHandler{
		quotaQueries:  quotaQueries,
		quotaCommands: quotaCommands,
	}
}

// @Summary Get quota by vehicle
// @Description Current allocation, usage, and expiry for a vehicle
// @Tags quota
// @Produce json
// @Security BearerAuth
// @Param vehicleId path string true "Vehicle ID"
// @Success 200 {object} resdto.QuotaResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quota/{vehicleId} [get]
func (h *QuotaHandler) GetQuota(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("vehicleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID format",
		})
		return
	}

	view, err := h.quotaQueries.GetByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		h.renderQuotaError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuotaView(view))
}

// @Summary Get quota by registration number
// @Description Resolve a scanned registration number to its quota view
// @Tags quota
// @Produce json
// @Security BearerAuth
// @Param registration path string true "Registration number"
// @Success 200 {object} resdto.QuotaResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quota/by-registration/{registration} [get]
func (h *QuotaHandler) GetQuotaByRegistration(c *gin.Context) {
	view, err := h.quotaQueries.GetByRegistration(c.Request.Context(), c.Param("registration"))
	if err != nil {
		h.renderQuotaError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuotaView(view))
}

func (h *QuotaHandler) renderQuotaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vehicle.ErrInvalidRegistrationNumber):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid registration number",
		})
	case errs.Is(err, errs.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Vehicle not found",
		})
	case errs.Is(err, errs.ErrQuotaNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active quota allocation for vehicle",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// @Summary Roll over vehicle quota
// @Description Replace the vehicle's allocation with a fresh one for the current month
// @Tags quota
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vehicleId path string true "Vehicle ID"
// @Param request body reqdto.RolloverRequest false "Optional amount override"
// @Success 200 {object} resdto.RolloverResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quotas/{vehicleId}/rollover [post]
func (h *QuotaHandler) Rollover(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("vehicleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID format",
		})
		return
	}

	var req reqdto.RolloverRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	result, err := h.quotaCommands.Rollover(c.Request.Context(), vehicleID, req.Amount)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errs.Is(err, errs.ErrStorageUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Storage temporarily unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, &resdto.RolloverResponse{
		VehicleID:       result.VehicleID,
		AllocatedAmount: result.AllocatedAmount,
		PeriodStart:     result.PeriodStart,
		PeriodEnd:       result.PeriodEnd,
	})
}

// @Summary Bulk allocate quotas
// @Description Roll over every vehicle matching the filter
// @Tags quota
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkAllocateRequest false "Filter and optional amount override"
// @Success 200 {object} resdto.BulkAllocateResponse
// @Failure 400 {object} map[string]string
// @Router /quotas/bulk-allocate [post]
func (h *QuotaHandler) BulkAllocate(c *gin.Context) {
	var req reqdto.BulkAllocateRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	filter := commands.BulkAllocateFilter{}
	if req.VehicleType != nil {
		vt, err := vehicle.NewVehicleType(*req.VehicleType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid vehicle type",
			})
			return
		}
		filter.VehicleType = &vt
	}
	if req.FuelType != nil {
		ft, err := vehicle.NewFuelType(*req.FuelType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid fuel type",
			})
			return
		}
		filter.FuelType = &ft
	}

	result, err := h.quotaCommands.BulkAllocate(c.Request.Context(), filter, req.Amount)
	if err != nil {
		if errs.Is(err, errs.ErrStorageUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Storage temporarily unavailable",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, &resdto.BulkAllocateResponse{
		AffectedVehicles: result.AffectedVehicles,
		FailedVehicles:   result.FailedVehicles,
	})
}
