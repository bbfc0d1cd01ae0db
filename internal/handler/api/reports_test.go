//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"fuel-quota-service/internal/analytics"
	"fuel-quota-service/internal/domain/auth"
	"fuel-quota-service/internal/domain/vehicle"
	"fuel-quota-service/internal/handler/api"
	"fuel-quota-service/internal/pkg/errs"
	"fuel-quota-service/internal/usecase"
	"fuel-quota-service/internal/usecase/queries"
	"fuel-quota-service/tests/common/httptest"
	queriesmock "fuel-quota-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReportHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockReportQueries
	handler     *api.ReportHandler
}

func (s *ReportHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockReportQueries(s.mockCtrl)
	s.handler = api.NewReportHandler(s.mockQueries, time.UTC)

	adminAuth := func(c *gin.Context) {
		c.Set("principal", &usecase.Principal{
			SubjectID: uuid.New(),
			Role:      auth.RoleAdmin,
		})
		c.Next()
	}

	reports := s.router.Group("/reports", adminAuth)
	reports.GET("/consumption", s.handler.Consumption)
	reports.GET("/stations", s.handler.StationPerformance)
	reports.GET("/stations/:id", s.handler.StationStats)
	reports.GET("/top-consumers", s.handler.TopConsumers)
	reports.GET("/trends", s.handler.UsageTrends)
	reports.GET("/utilization", s.handler.Utilization)
}

func (s *ReportHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}

// June 2026 bounds as the handlers derive them: start of the start day
// through the last second of the end day.
var (
	juneStart = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	juneEnd   = time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
)

const juneRange = "start=2026-06-01&end=2026-06-30"

func (s *ReportHandlerTestSuite) TestConsumption() {
	s.Run("success: returns 200 OK with the report", func() {
		s.mockQueries.EXPECT().
			Consumption(gomock.Any(), juneStart, juneEnd, gomock.Nil()).
			Return(analytics.ConsumptionReport{
				PeriodStart:       juneStart,
				PeriodEnd:         juneEnd,
				TotalPetrol:       120,
				TotalFuel:         120,
				TransactionCount:  8,
				AveragePerTx:      15,
				MostActiveStation: "Colombo Central",
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/consumption?"+juneRange, nil, "token")

		var res analytics.ConsumptionReport
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(120.0, res.TotalFuel)
		s.Equal("Colombo Central", res.MostActiveStation)
	})

	s.Run("success: fuel_type query becomes a typed filter", func() {
		s.mockQueries.EXPECT().
			Consumption(gomock.Any(), juneStart, juneEnd, gomock.Cond(func(ft *vehicle.FuelType) bool {
				return ft != nil && *ft == vehicle.FuelDiesel
			})).
			Return(analytics.ConsumptionReport{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/consumption?"+juneRange+"&fuel_type=Diesel", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: 400 on malformed dates", func() {
		cases := []struct {
			name   string
			query  string
			errMsg string
		}{
			{"missing start", "end=2026-06-30", "start must be a YYYY-MM-DD date"},
			{"malformed start", "start=June&end=2026-06-30", "start must be a YYYY-MM-DD date"},
			{"malformed end", "start=2026-06-01&end=soon", "end must be a YYYY-MM-DD date"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/consumption?"+tc.query, nil, "token")
				httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, tc.errMsg)
			})
		}
	})

	s.Run("error: 400 for unknown fuel type", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/consumption?"+juneRange+"&fuel_type=Kerosene", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid fuel type")
	})

	s.Run("error: 400 for reversed range", func() {
		s.mockQueries.EXPECT().
			Consumption(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(analytics.ConsumptionReport{}, queries.ErrInvalidDateRange)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/consumption?start=2026-06-30&end=2026-06-01", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid date range")
	})
}

func (s *ReportHandlerTestSuite) TestStationStats() {
	s.Run("success: returns 200 OK with station statistics", func() {
		stationID := uuid.New()
		s.mockQueries.EXPECT().
			StationStats(gomock.Any(), stationID, juneStart, juneEnd).
			Return(analytics.StationStats{
				StationID:        stationID,
				StationName:      "Galle Road",
				TotalDispensed:   30,
				TransactionCount: 3,
			}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/stations/"+stationID.String()+"?"+juneRange, nil, "token")

		var res analytics.StationStats
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(stationID, res.StationID)
		s.Equal(30.0, res.TotalDispensed)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/stations/not-a-uuid?"+juneRange, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid station ID format")
	})

	s.Run("error: 404 Not Found for unknown station", func() {
		stationID := uuid.New()
		s.mockQueries.EXPECT().
			StationStats(gomock.Any(), stationID, juneStart, juneEnd).
			Return(analytics.StationStats{}, errs.ErrStationNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/stations/"+stationID.String()+"?"+juneRange, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Fuel station not found")
	})
}

func (s *ReportHandlerTestSuite) TestTopConsumers() {
	s.Run("success: limit defaults to 10", func() {
		s.mockQueries.EXPECT().
			TopConsumers(gomock.Any(), 10, juneStart, juneEnd).
			Return([]analytics.TopConsumer{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/top-consumers?"+juneRange, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("success: explicit limit is forwarded", func() {
		s.mockQueries.EXPECT().
			TopConsumers(gomock.Any(), 3, juneStart, juneEnd).
			Return([]analytics.TopConsumer{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/top-consumers?"+juneRange+"&limit=3", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: 400 for non-positive limit", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/top-consumers?"+juneRange+"&limit=0", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "limit must be a positive integer")
	})
}

func (s *ReportHandlerTestSuite) TestUsageTrends() {
	s.Run("success: bucket defaults to day", func() {
		s.mockQueries.EXPECT().
			UsageTrends(gomock.Any(), juneStart, juneEnd, analytics.BucketDay).
			Return([]analytics.TrendPoint{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reports/trends?"+juneRange, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("success: week bucket is forwarded", func() {
		s.mockQueries.EXPECT().
			UsageTrends(gomock.Any(), juneStart, juneEnd, analytics.BucketWeek).
			Return([]analytics.TrendPoint{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/trends?"+juneRange+"&bucket=week", nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})

	s.Run("error: 400 for unknown bucket", func() {
		s.mockQueries.EXPECT().
			UsageTrends(gomock.Any(), juneStart, juneEnd, analytics.Bucket("hour")).
			Return(nil, queries.ErrInvalidBucket)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/trends?"+juneRange+"&bucket=hour", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "bucket must be one of day, week, month")
	})
}

func (s *ReportHandlerTestSuite) TestUtilization() {
	s.Run("success: month query selects the period", func() {
		monthStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().
			Utilization(gomock.Any(), time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)).
			Return(&queries.UtilizationReport{Month: monthStart, VehicleCount: 40}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/utilization?month=2026-06-15", nil, "token")

		var res queries.UtilizationReport
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)
		s.Equal(40, res.VehicleCount)
		s.True(res.Month.Equal(monthStart))
	})

	s.Run("error: 400 for malformed month", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reports/utilization?month=June", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "month must be a YYYY-MM-DD date")
	})
}
