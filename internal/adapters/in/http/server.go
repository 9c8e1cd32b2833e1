// Package http exposes the fulfillment use cases over a JSON API built on echo.
package http

import (
	"net/http"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/oapi-codegen/runtime/types"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Server routes requests to the application use cases.
type Server struct {
	useCases UseCases
	doc      *APIDoc
	logger   *logrus.Entry
}

func NewServer(useCases UseCases, doc *APIDoc, logger *logrus.Logger) *Server {
	return &Server{
		useCases: useCases,
		doc:      doc,
		logger:   logger.WithField("component", "http"),
	}
}

// Register installs middleware, the error handler and all routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.HTTPErrorHandler = errorHandler(s.logger)
	e.Use(middleware.Recover())
	e.Use(requestLog(s.logger))
	e.Use(s.doc.validateRequests())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{Success: true, Message: "healthy"})
	})
	e.GET("/openapi.json", s.doc.serveJSON)
	s.doc.registerSwagger()
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	buyer, farmer, admin := kernel.RoleBuyer, kernel.RoleFarmer, kernel.RoleAdmin

	orders := e.Group("/orders")
	orders.POST("", s.CreateOrder, identify(buyer))
	orders.GET("", s.ListOrders, identify(buyer, farmer, admin))
	orders.GET("/:id", s.GetOrder, identify())
	orders.PUT("/:id", s.UpdateOrder, identify(buyer))
	orders.PUT("/:id/accept", s.AcceptOrder, identify(farmer))
	orders.PUT("/:id/reject", s.RejectOrder, identify(farmer))
	orders.PUT("/:id/cancel", s.CancelOrder, identify(buyer, farmer))

	transactions := e.Group("/transactions")
	transactions.POST("/record-payment", s.RecordPayment, identify(buyer))
	transactions.POST("/:id/apply", s.ApplyPayment, identify(admin))
	transactions.GET("", s.ListTransactions, identify())
	transactions.GET("/stats/summary", s.TransactionStats, identify())
	transactions.GET("/:id", s.GetTransaction, identify())

	transports := e.Group("/transport")
	transports.POST("/schedule", s.ScheduleTransport, identify(farmer))
	transports.GET("", s.ListTransports, identify(buyer, farmer, admin))
	transports.GET("/order/:orderId", s.GetTransportByOrder, identify())
	transports.GET("/:id", s.GetTransport, identify())
	transports.PUT("/:id/status", s.UpdateTransportStatus, identify(farmer))
	transports.PUT("/:id/monitoring", s.RecordMonitoring, identify(farmer))
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return toID(name, id)
}

func toID(name string, id types.UUID) (kernel.UUID, error) {
	parsed, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return parsed, nil
}

type listParams struct {
	status string
	skip   int
	limit  int
}

func bindListParams(c echo.Context) (listParams, error) {
	var (
		status *string
		skip   *int
		limit  *int
		params = c.QueryParams()
	)
	if err := runtime.BindQueryParameter("form", true, false, "status", params, &status); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "skip", params, &skip); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("skip", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		return listParams{}, errs.NewValueIsInvalidErrorWithCause("limit", err)
	}

	var p listParams
	if status != nil {
		p.status = *status
	}
	if skip != nil {
		p.skip = *skip
	}
	if limit != nil {
		p.limit = *limit
	}
	return p, nil
}

func bindBody(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
