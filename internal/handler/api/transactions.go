package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "fuel-quota-service/internal/handler/dto/response"
	"fuel-quota-service/internal/handler/middleware"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	transactionQueries queries.TransactionQueries
}

func NewTransactionHandler(transactionQueries queries.TransactionQueries) *TransactionHandler {
	return &TransactionHandler{
		transactionQueries: transactionQueries,
	}
}

// @Summary List fuel transactions
// @Description Newest-first transaction history; operators see their own station only
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param station_id query string false "Filter by station (admin only)"
// @Param vehicle_id query string false "Filter by vehicle"
// @Param before query string false "Keyset cursor (RFC3339 timestamp)"
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {array} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	filter := queries.TransactionFilter{}

	// Operator tokens are pinned to their own station.
	if principal.StationID != nil {
		filter.StationID = principal.StationID
	} else if raw := c.Query("station_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid station ID format",
			})
			return
		}
		filter.StationID = &id
	}

	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid vehicle ID format",
			})
			return
		}
		filter.VehicleID = &id
	}

	if raw := c.Query("before"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "before must be an RFC3339 timestamp",
			})
			return
		}
		filter.Before = &before
	}

	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a positive integer",
			})
			return
		}
		filter.Limit = int32(n)
	}

	views, err := h.transactionQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionViews(views))
}

// @Summary Get fuel transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.transactionQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}
