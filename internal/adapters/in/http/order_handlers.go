package http

import (
	"net/http"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body createOrderBody
	if err := bindBody(c, &body); err != nil {
		return err
	}
	sellerID, err := toID("farmerId", body.FarmerID)
	if err != nil {
		return err
	}
	listingID, err := toID("cropId", body.CropID)
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewCreateOrderCommand(actor, sellerID, listingID, body.Quantity, body.Unit,
		body.PricePerUnit, order.Quality(body.Quality), body.Notes)
	if err != nil {
		return err
	}

	o, err := s.useCases.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusCreated, "Order placed", actor, o.ID())
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListOrdersQuery(actorFrom(c), params.status, params.skip, params.limit)
	if err != nil {
		return err
	}

	page, err := s.useCases.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondPage(c, mapItems(page.Items, newOrderResponse), page.Total, page.Skip, page.Limit)
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, "", actorFrom(c), id)
}

// UpdateOrder handles PUT /orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body updateOrderBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	changes := commands.OrderChanges{
		Quantity:     body.Quantity,
		Unit:         body.Unit,
		PricePerUnit: body.PricePerUnit,
		Notes:        body.Notes,
	}
	if body.Quality != nil {
		q := order.Quality(*body.Quality)
		changes.Quality = &q
	}

	actor := actorFrom(c)
	cmd, err := commands.NewUpdateOrderCommand(actor, id, changes)
	if err != nil {
		return err
	}
	if _, err = s.useCases.UpdateOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, "Order updated", actor, id)
}

// AcceptOrder handles PUT /orders/:id/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	id, body, err := answerRequest(c)
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewAcceptOrderCommand(actor, id, body.Notes)
	if err != nil {
		return err
	}
	if _, err = s.useCases.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, "Order accepted", actor, id)
}

// RejectOrder handles PUT /orders/:id/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	id, body, err := answerRequest(c)
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewRejectOrderCommand(actor, id, body.Reason)
	if err != nil {
		return err
	}
	if _, err = s.useCases.RejectOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, "Order rejected", actor, id)
}

// CancelOrder handles PUT /orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, body, err := answerRequest(c)
	if err != nil {
		return err
	}
	actor := actorFrom(c)
	cmd, err := commands.NewCancelOrderCommand(actor, id, body.Reason)
	if err != nil {
		return err
	}
	if _, err = s.useCases.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOrder(c, http.StatusOK, "Order cancelled", actor, id)
}

func answerRequest(c echo.Context) (kernel.UUID, answerBody, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return kernel.UUID{}, answerBody{}, err
	}
	var body answerBody
	if c.Request().ContentLength != 0 {
		if err = bindBody(c, &body); err != nil {
			return kernel.UUID{}, answerBody{}, err
		}
	}
	return id, body, nil
}

func (s *Server) orderView(c echo.Context, actor kernel.Actor, id kernel.UUID) (queries.OrderView, error) {
	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return queries.OrderView{}, err
	}
	return s.useCases.GetOrder.Handle(c.Request().Context(), query)
}

func (s *Server) respondOrder(c echo.Context, code int, message string, actor kernel.Actor, id kernel.UUID) error {
	view, err := s.orderView(c, actor, id)
	if err != nil {
		return err
	}
	return respond(c, code, message, newOrderResponse(view))
}
