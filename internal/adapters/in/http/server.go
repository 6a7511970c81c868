package http

import (
	"net/http"
	"sync"

	"waterdelivery/internal/adapters/in/http/openapi"
	"waterdelivery/internal/core/application/reporting"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateRequest       commands.CreateRequestCommandHandler
	ChangeRequestStatus commands.ChangeRequestStatusCommandHandler
	AssignRequest       commands.AssignRequestCommandHandler
	RegisterArrival     commands.RegisterArrivalCommandHandler
	RegisterDelivery    commands.RegisterDeliveryCommandHandler
	AddLocality         commands.AddLocalityCommandHandler
	SetLocalityActive   commands.SetLocalityActiveCommandHandler

	GetRequest               queries.GetRequestQueryHandler
	GetRequests              queries.GetRequestsQueryHandler
	GetLocality              queries.GetLocalityQueryHandler
	GetLocalities            queries.GetLocalitiesQueryHandler
	SelectCandidates         queries.SelectCandidatesQueryHandler
	GetTicketByCode          queries.GetTicketByCodeQueryHandler
	GetOpenTicketsByLocality queries.GetOpenTicketsByLocalityQueryHandler
}

// Reports holds the report command log and its collaborators.
type Reports struct {
	Generator *reporting.Generator
	Invoker   *reporting.Invoker
	Reader    reporting.Reader
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	reports  Reports

	// reportsMu serializes execute, undo and redo on the shared command log.
	reportsMu sync.Mutex

	logger *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, reports Reports, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		handlers: handlers,
		reports:  reports,
		logger:   logger.Named("http"),
	}
}

// NewEcho builds an echo instance with the API routes registered. Requests are
// logged through zap, so echo's own logger is switched off.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.OFF)
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.logger.Info("request", fields...)
			return nil
		},
	}))

	s.Register(e)
	return e
}

// Register adds the API routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, openapi.Document())
	})

	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests", s.GetRequests)
	api.GET("/requests/:id", s.GetRequest)
	api.PUT("/requests/:id/status", s.ChangeRequestStatus)
	api.POST("/requests/:id/assignment", s.AssignRequest)

	api.POST("/localities", s.AddLocality)
	api.GET("/localities", s.GetLocalities)
	api.GET("/localities/candidates", s.SelectCandidates)
	api.GET("/localities/:id", s.GetLocality)
	api.PUT("/localities/:id/active", s.SetLocalityActive)
	api.GET("/localities/:id/tickets", s.GetOpenTickets)
	api.GET("/localities/:id/reports", s.GetLocalityReports)

	api.GET("/tickets/:code", s.GetTicket)
	api.PUT("/tickets/:id/arrival", s.RegisterArrival)
	api.PUT("/tickets/:id/delivery", s.RegisterDelivery)

	api.POST("/reports", s.GenerateReport)
	api.POST("/reports/undo", s.UndoReport)
	api.POST("/reports/redo", s.RedoReport)
	api.GET("/reports/history", s.ReportHistory)
	api.GET("/reports/:id", s.GetReport)
}

// pathID binds a uuid path parameter with the simple style used by the
// OpenAPI document.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// bindAndValidate decodes the body into dst and runs the struct validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}
