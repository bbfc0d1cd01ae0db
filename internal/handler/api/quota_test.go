//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/handler/api"
	resdto "fuel-quota-service/internal/handler/dto/response"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase"
	"fuel-quota-service/internal/usecase/commands"
	"fuel-quota-service/internal/usecase/queries"
	"fuel-quota-service/tests/common/httptest"
	commandsmock "fuel-quota-service/tests/mock/commands"
	queriesmock "fuel-quota-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuotaHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockQueries  *queriesmock.MockQuotaQueries
	mockCommands *commandsmock.MockQuotaCommands
	handler      *api.QuotaHandler
}

func (s *QuotaHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockQuotaQueries(s.mockCtrl)
	s.mockCommands = commandsmock.NewMockQuotaCommands(s.mockCtrl)
	s.handler = api.NewQuotaHandler(s.mockQueries, s.mockCommands)

	ownerAuth := func(c *gin.Context) {
		c.Set("principal", &usecase.Principal{
			SubjectID: uuid.New(),
			Role:      auth.RoleVehicleOwner,
		})
		c.Next()
	}
	adminAuth := func(c *gin.Context) {
		c.Set("principal", &usecase.Principal{
			SubjectID: uuid.New(),
			Role:      auth.RoleAdmin,
		})
		c.Next()
	}

	s.router.GET("/quota/:vehicleId", ownerAuth, s.handler.GetQuota)
	s.router.GET("/quota/by-registration/:registration", ownerAuth, s.handler.GetQuotaByRegistration)
	s.router.POST("/quotas/:vehicleId/rollover", adminAuth, s.handler.Rollover)
	s.router.POST("/quotas/bulk-allocate", adminAuth, s.handler.BulkAllocate)
}

func (s *QuotaHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuotaHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuotaHandlerTestSuite))
}

func sampleQuotaView(vehicleID uuid.UUID) *queries.QuotaView {
	periodStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return &queries.QuotaView{
		VehicleID:           vehicleID,
		RegistrationNumber:  "CAB-1234",
		VehicleType:         "Car",
		FuelType:            "Petrol",
		PeriodStart:         periodStart,
		PeriodEnd:           periodStart.AddDate(0, 1, 0).Add(-time.Second),
		AllocatedAmount:     60,
		UsedAmount:          15,
		RemainingAmount:     45,
		UsagePercentage:     25,
		RemainingPercentage: 75,
		WarningLevel:        "none",
	}
}

func (s *QuotaHandlerTestSuite) TestGetQuota() {
	s.Run("success: returns 200 OK with QuotaResponse", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().
			GetByVehicle(gomock.Any(), vehicleID).
			Return(sampleQuotaView(vehicleID), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/"+vehicleID.String(), nil, "token")

		var res resdto.QuotaResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(vehicleID, res.VehicleID)
		s.Equal("CAB-1234", res.RegistrationNumber)
		s.Equal(45.0, res.RemainingAmount)
		s.Equal("none", res.WarningLevel)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid vehicle ID format")
	})

	s.Run("error: 404 Not Found for missing vehicle", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().
			GetByVehicle(gomock.Any(), vehicleID).
			Return(nil, errs.ErrVehicleNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/"+vehicleID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Vehicle not found")
	})

	s.Run("error: 404 Not Found when no active allocation", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().
			GetByVehicle(gomock.Any(), vehicleID).
			Return(nil, errs.ErrQuotaNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/"+vehicleID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "No active quota allocation")
	})
}

func (s *QuotaHandlerTestSuite) TestGetQuotaByRegistration() {
	s.Run("success: resolves registration to quota view", func() {
		vehicleID := uuid.New()
		s.mockQueries.EXPECT().
			GetByRegistration(gomock.Any(), "CAB-1234").
			Return(sampleQuotaView(vehicleID), nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/by-registration/CAB-1234", nil, "token")

		var res resdto.QuotaResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(vehicleID, res.VehicleID)
	})

	s.Run("error: 400 for malformed registration", func() {
		s.mockQueries.EXPECT().
			GetByRegistration(gomock.Any(), "xx").
			Return(nil, vehicle.ErrInvalidRegistrationNumber)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quota/by-registration/xx", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid registration number")
	})
}

func (s *QuotaHandlerTestSuite) TestRollover() {
	periodStart := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	s.Run("success: empty body rolls over with policy amount", func() {
		vehicleID := uuid.New()
		s.mockCommands.EXPECT().
			Rollover(gomock.Any(), vehicleID, gomock.Nil()).
			Return(&commands.RolloverResult{
				VehicleID:       vehicleID,
				AllocatedAmount: 60,
				PeriodStart:     periodStart,
				PeriodEnd:       periodStart.AddDate(0, 1, 0).Add(-time.Second),
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/"+vehicleID.String()+"/rollover", nil, "")

		var res resdto.RolloverResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(vehicleID, res.VehicleID)
		s.Equal(60.0, res.AllocatedAmount)
	})

	s.Run("success: body amount overrides the policy", func() {
		vehicleID := uuid.New()
		s.mockCommands.EXPECT().
			Rollover(gomock.Any(), vehicleID, gomock.Cond(func(amount *float64) bool {
				return amount != nil && *amount == 45
			})).
			Return(&commands.RolloverResult{
				VehicleID:       vehicleID,
				AllocatedAmount: 45,
				PeriodStart:     periodStart,
				PeriodEnd:       periodStart.AddDate(0, 1, 0).Add(-time.Second),
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/"+vehicleID.String()+"/rollover",
			map[string]any{"amount": 45}, "")

		var res resdto.RolloverResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(45.0, res.AllocatedAmount)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/not-a-uuid/rollover", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid vehicle ID format")
	})

	s.Run("error: 404 Not Found for missing vehicle", func() {
		vehicleID := uuid.New()
		s.mockCommands.EXPECT().
			Rollover(gomock.Any(), vehicleID, gomock.Nil()).
			Return(nil, errs.ErrVehicleNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/"+vehicleID.String()+"/rollover", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Vehicle not found")
	})

	s.Run("error: 503 when storage is unavailable", func() {
		vehicleID := uuid.New()
		s.mockCommands.EXPECT().
			Rollover(gomock.Any(), vehicleID, gomock.Nil()).
			Return(nil, errs.Mark(errs.New("connection refused"), errs.ErrStorageUnavailable))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/"+vehicleID.String()+"/rollover", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Storage temporarily unavailable")
	})
}

func (s *QuotaHandlerTestSuite) TestBulkAllocate() {
	s.Run("success: filter is parsed into domain types", func() {
		s.mockCommands.EXPECT().
			BulkAllocate(gomock.Any(), gomock.Cond(func(filter commands.BulkAllocateFilter) bool {
				return filter.VehicleType != nil && *filter.VehicleType == vehicle.TypeMotorcycle &&
					filter.FuelType != nil && *filter.FuelType == vehicle.FuelPetrol
			}), gomock.Nil()).
			Return(&commands.BulkAllocateResult{AffectedVehicles: 12, FailedVehicles: 1}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/bulk-allocate",
			map[string]any{"vehicle_type": "Motorcycle", "fuel_type": "Petrol"}, "")

		var res resdto.BulkAllocateResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(12, res.AffectedVehicles)
		s.Equal(1, res.FailedVehicles)
	})

	s.Run("success: empty body allocates across the whole fleet", func() {
		s.mockCommands.EXPECT().
			BulkAllocate(gomock.Any(), commands.BulkAllocateFilter{}, gomock.Nil()).
			Return(&commands.BulkAllocateResult{AffectedVehicles: 200}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/bulk-allocate", nil, "")

		var res resdto.BulkAllocateResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(200, res.AffectedVehicles)
	})

	s.Run("error: 400 for unknown vehicle type", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/bulk-allocate",
			map[string]any{"vehicle_type": "Hovercraft"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid vehicle type")
	})

	s.Run("error: 400 for unknown fuel type", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotas/bulk-allocate",
			map[string]any{"fuel_type": "Kerosene"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid fuel type")
	})
}
