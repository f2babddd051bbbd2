// Package http exposes the ordering core over a JSON API built on echo.
// Every /api/v1 route requires a bearer token; the token subject is the
// acting identity and its role is read from the actor directory. Requests
// are checked against the OpenAPI document of package api before they reach
// a handler.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	ApplyTransition       commands.ApplyTransitionCommandHandler
	ClaimOrder            commands.ClaimOrderCommandHandler
	RegisterDeviceToken   commands.RegisterDeviceTokenCommandHandler
	UpdateCourierLocation commands.UpdateCourierLocationCommandHandler

	GetOrder             queries.GetOrderQueryHandler
	ListCustomerOrders   queries.ListCustomerOrdersQueryHandler
	ListRestaurantOrders queries.ListRestaurantOrdersQueryHandler
	ListAvailableOrders  queries.ListAvailableOrdersQueryHandler
	ListNotifications    queries.ListNotificationsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	tokens   *TokenService
	doc      *openapi3.T
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	tokens *TokenService,
	doc *openapi3.T,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		doc:      doc,
		metrics:  m,
		gatherer: gatherer,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.countRequests)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", Authenticate(s.tokens), ValidateRequests(s.doc))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListCustomerOrders)
	api.GET("/orders/available", s.ListAvailableOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.ApplyTransition)
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.PUT("/orders/:id/courier-location", s.UpdateCourierLocation)

	api.GET("/restaurant/orders", s.ListRestaurantOrders)

	api.PUT("/me/device-token", s.RegisterDeviceToken)
	api.GET("/me/notifications", s.ListNotifications)
}

func (s *Server) countRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.metrics.HTTPRequestsTotal.
			WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status)).
			Inc()
		return nil
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(c, "invalid restaurant_id: "+err.Error())
	}

	lines := make([]commands.ItemLine, 0, len(req.Items))
	for _, item := range req.Items {
		foodID, parseErr := kernel.UUIDFromString(item.FoodID)
		if parseErr != nil {
			return badRequest(c, "invalid food_id: "+parseErr.Error())
		}
		lines = append(lines, commands.ItemLine{
			FoodID:    foodID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actorFrom(c), restaurantID, lines, req.Delivery.Lat, req.Delivery.Lon,
	)
	if err != nil {
		return badRequest(c, "invalid order data: "+err.Error())
	}

	result, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	s.countEvent("create", err)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, OrderChange{
		Order:         toOrder(queries.NewOrderView(result.Order)),
		Notifications: toSummary(result.Report),
	})
}

// ApplyTransition handles POST /api/v1/orders/:id/transitions.
func (s *Server) ApplyTransition(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	var req TransitionRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewApplyTransitionCommand(orderID, actorFrom(c), req.Event)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.handlers.ApplyTransition.Handle(c.Request().Context(), cmd)
	s.countEvent(cmd.Event().String(), err)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, OrderChange{
		Order:         toOrder(queries.NewOrderView(result.Order)),
		Notifications: toSummary(result.Report),
	})
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := s.handlers.ClaimOrder.Handle(c.Request().Context(), cmd)
	s.countEvent("assign", err)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, OrderChange{
		Order:         toOrder(queries.NewOrderView(result.Order)),
		Notifications: toSummary(result.Report),
	})
}

// UpdateCourierLocation handles PUT /api/v1/orders/:id/courier-location.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	var req Location
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(orderID, actorFrom(c), req.Lat, req.Lon)
	if err != nil {
		return badRequest(c, err.Error())
	}

	o, err := s.handlers.UpdateCourierLocation.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(queries.NewOrderView(o)))
}

// RegisterDeviceToken handles PUT /api/v1/me/device-token.
func (s *Server) RegisterDeviceToken(c echo.Context) error {
	var req DeviceTokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewRegisterDeviceTokenCommand(actorFrom(c), req.Token)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err = s.handlers.RegisterDeviceToken.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return badRequest(c, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(view))
}

// ListCustomerOrders handles GET /api/v1/orders, the caller's order history.
func (s *Server) ListCustomerOrders(c echo.Context) error {
	query, err := queries.NewListCustomerOrdersQuery(actorFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	views, err := s.handlers.ListCustomerOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrders(views))
}

// ListAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) ListAvailableOrders(c echo.Context) error {
	query, err := queries.NewListAvailableOrdersQuery(actorFrom(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	views, err := s.handlers.ListAvailableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrders(views))
}

// ListRestaurantOrders handles GET /api/v1/restaurant/orders?status=pending.
func (s *Server) ListRestaurantOrders(c echo.Context) error {
	var status string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &status); err != nil {
		return badRequest(c, "invalid status")
	}

	query, err := queries.NewListRestaurantOrdersQuery(actorFrom(c), status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	views, err := s.handlers.ListRestaurantOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrders(views))
}

// ListNotifications handles GET /api/v1/me/notifications?limit=20.
func (s *Server) ListNotifications(c echo.Context) error {
	var limit int
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return badRequest(c, "invalid limit")
	}

	query, err := queries.NewListNotificationsQuery(actorFrom(c), limit)
	if err != nil {
		return badRequest(c, err.Error())
	}

	entries, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toNotifications(entries))
}

func orderIDParam(c echo.Context) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromBytes(id[:])
}

func (s *Server) countEvent(event string, err error) {
	s.metrics.OrderEventsTotal.WithLabelValues(event, resultLabel(err)).Inc()
}
