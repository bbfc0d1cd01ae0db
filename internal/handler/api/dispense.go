package api

import (
	"errors"
	"net/http"

	reqdto "fuel-quota-service/internal/handler/dto/request"
	resdto "fuel-quota-service/internal/handler/dto/response"
	"fuel-quota-service/internal/handler/middleware"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fuel-quota-service/internal/domain/vehicle"
)

type DispenseHandler struct {
	dispenseUseCase commands.DispenseCommands
}

func NewDispenseHandler(dispenseUseCase commands.DispenseCommands) *DispenseHandler {
	return &DispenseHandler{
		dispenseUseCase: dispenseUseCase,
	}
}

// @Summary Record fuel dispensing
// @Description Debit the vehicle's quota and append an audit transaction
// @Tags dispense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.DispenseRequest true "Dispense request"
// @Success 201 {object} resdto.DispenseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /dispense [post]
func (h *DispenseHandler) RecordDispense(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	idempotencyKey, err := getIdempotencyKey(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	var req reqdto.DispenseRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	stationID := uuid.Nil
	if principal.StationID != nil {
		stationID = *principal.StationID
	} else if req.StationID != nil {
		stationID = *req.StationID
	}
	if stationID == uuid.Nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Station identity required",
		})
		return
	}

	fuelType, err := vehicle.NewFuelType(req.FuelType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid fuel type",
		})
		return
	}

	params := commands.DispenseRequest{
		VehicleID: req.VehicleID,
		StationID: stationID,
		FuelType:  fuelType,
		Amount:    req.Amount,
	}

	result, err := h.dispenseUseCase.RecordDispense(c.Request.Context(), params, idempotencyKey)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errs.Is(err, errs.ErrStationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Fuel station not found",
			})
		case errs.Is(err, errs.ErrQuotaNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active quota allocation for vehicle",
			})
		case errs.Is(err, errs.ErrStationInactive):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Station is not active",
			})
		case errs.Is(err, errs.ErrFuelTypeUnsupported):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Fuel type not available for this station or vehicle",
			})
		case errs.Is(err, errs.ErrAmountOutOfRange):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Dispense amount out of allowed range",
			})
		case errs.Is(err, errs.ErrQuotaExpired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Quota period has expired",
			})
		case errs.Is(err, errs.ErrInsufficientQuota):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient remaining quota",
			})
		case errs.Is(err, errs.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Duplicate request with different parameters",
			})
		case errs.Is(err, errs.ErrDispenseInProgress):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Dispense request is currently being processed",
			})
		case errs.Is(err, errs.ErrConcurrencyConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Conflicting ledger update, please retry",
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

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromDispenseResult(result))
}

// @Summary Mark transaction delivered
// @Description Transition a pending transaction to completed after notification delivery
// @Tags dispense
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id}/delivered [patch]
func (h *DispenseHandler) MarkDelivered(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	if err := h.dispenseUseCase.MarkDelivered(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, errs.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
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

	c.Status(http.StatusNoContent)
}

func getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	raw := c.GetHeader("Idempotency-Key")
	if raw == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}
	key, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("Idempotency-Key must be a valid UUID")
	}
	return key, nil
}
