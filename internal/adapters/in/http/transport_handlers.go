package http

import (
	"net/http"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ScheduleTransport handles POST /transport/schedule. Missing locations default to the
// parties' profile addresses.
func (s *Server) ScheduleTransport(c echo.Context) error {
	var body scheduleTransportBody
	if err := bindBody(c, &body); err != nil {
		return err
	}
	orderID, err := toID("orderId", body.OrderID)
	if err != nil {
		return err
	}
	pickup, err := body.PickupLocation.toAddress()
	if err != nil {
		return err
	}
	delivery, err := body.DeliveryLocation.toAddress()
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewScheduleTransportCommand(actor, orderID, body.PickupDate,
		body.TransportProvider.toCarrier(), pickup, delivery, body.Notes)
	if err != nil {
		return err
	}
	t, err := s.useCases.ScheduleTransport.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	query, err := queries.NewGetTransportQuery(actor, t.ID())
	if err != nil {
		return err
	}
	return s.respondTransport(c, http.StatusCreated, "Transport scheduled", query)
}

// ListTransports handles GET /transport.
func (s *Server) ListTransports(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListTransportsQuery(actorFrom(c), params.status, params.skip, params.limit)
	if err != nil {
		return err
	}

	page, err := s.useCases.ListTransports.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondPage(c, mapItems(page.Items, newTransportResponse), page.Total, page.Skip, page.Limit)
}

// GetTransport handles GET /transport/:id.
func (s *Server) GetTransport(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTransportQuery(actorFrom(c), id)
	if err != nil {
		return err
	}
	return s.respondTransport(c, http.StatusOK, "", query)
}

// GetTransportByOrder handles GET /transport/order/:orderId.
func (s *Server) GetTransportByOrder(c echo.Context) error {
	orderID, err := pathID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTransportByOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	return s.respondTransport(c, http.StatusOK, "", query)
}

// UpdateTransportStatus handles PUT /transport/:id/status.
func (s *Server) UpdateTransportStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body transportStatusBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	var location *kernel.GeoPoint
	if body.CurrentLocation != nil {
		point, err := kernel.NewGeoPoint(body.CurrentLocation.Latitude, body.CurrentLocation.Longitude)
		if err != nil {
			return err
		}
		location = &point
	}

	actor := actorFrom(c)
	cmd, err := commands.NewUpdateTransportStatusCommand(actor, id, body.Status, location, body.Notes, body.Signature)
	if err != nil {
		return err
	}
	if _, err = s.useCases.UpdateTransportStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetTransportQuery(actor, id)
	if err != nil {
		return err
	}
	return s.respondTransport(c, http.StatusOK, "Transport status updated", query)
}

// RecordMonitoring handles PUT /transport/:id/monitoring.
func (s *Server) RecordMonitoring(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var body monitoringBody
	if err = bindBody(c, &body); err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewRecordMonitoringCommand(actor, id, body.Temperature, body.Humidity, body.Photos)
	if err != nil {
		return err
	}
	if _, err = s.useCases.RecordMonitoring.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetTransportQuery(actor, id)
	if err != nil {
		return err
	}
	return s.respondTransport(c, http.StatusOK, "Monitoring data recorded", query)
}

func (s *Server) respondTransport(c echo.Context, code int, message string, query queries.GetTransportQuery) error {
	view, err := s.useCases.GetTransport.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, code, message, newTransportResponse(view))
}
