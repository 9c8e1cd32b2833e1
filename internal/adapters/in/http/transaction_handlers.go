package http

import (
	"net/http"

	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

type paymentResponse struct {
	Transaction transactionResponse `json:"transaction"`
	Order       *orderResponse      `json:"order,omitempty"`
	Applied     bool                `json:"applied"`
	Outcome     string              `json:"outcome,omitempty"`
}

// RecordPayment handles POST /transactions/record-payment.
func (s *Server) RecordPayment(c echo.Context) error {
	var body recordPaymentBody
	if err := bindBody(c, &body); err != nil {
		return err
	}
	orderID, err := toID("orderId", body.OrderID)
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewRecordPaymentCommand(actor, orderID, body.Amount, body.PaymentMethod,
		body.ReferenceNumber, body.Description)
	if err != nil {
		return err
	}
	result, err := s.useCases.RecordPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp, err := s.paymentResponse(c, actor, result.Transaction.ID(), &orderID)
	if err != nil {
		return err
	}
	resp.Applied = result.Applied
	message := "Payment recorded"
	if !result.Applied {
		message = "Payment recorded, applying it to the order is pending"
	}
	return respond(c, http.StatusCreated, message, resp)
}

// ApplyPayment handles POST /transactions/:id/apply.
func (s *Server) ApplyPayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	result, err := s.useCases.ApplyPayment.Handle(c.Request().Context(), commands.NewApplyPaymentCommand(id))
	if err != nil {
		return err
	}

	resp, err := s.paymentResponse(c, actorFrom(c), id, result.Transaction.OrderID())
	if err != nil {
		return err
	}
	resp.Applied = result.Outcome != commands.ApplyOutcomeFailed
	resp.Outcome = string(result.Outcome)
	return respond(c, http.StatusOK, "Payment "+string(result.Outcome), resp)
}

// ListTransactions handles GET /transactions.
func (s *Server) ListTransactions(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListTransactionsQuery(actorFrom(c), params.status, params.skip, params.limit)
	if err != nil {
		return err
	}

	page, err := s.useCases.Transactions.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondPage(c, mapItems(page.Items, newTransactionResponse), page.Total, page.Skip, page.Limit)
}

// GetTransaction handles GET /transactions/:id.
func (s *Server) GetTransaction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetTransactionQuery(actorFrom(c), id)
	if err != nil {
		return err
	}
	view, err := s.useCases.Transactions.Get(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", newTransactionResponse(view))
}

// TransactionStats handles GET /transactions/stats/summary.
func (s *Server) TransactionStats(c echo.Context) error {
	query, err := queries.NewTransactionStatsQuery(actorFrom(c))
	if err != nil {
		return err
	}
	stats, err := s.useCases.Transactions.Stats(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", statsResponse(stats))
}

func (s *Server) paymentResponse(
	c echo.Context,
	actor kernel.Actor,
	transactionID kernel.UUID,
	orderID *kernel.UUID,
) (paymentResponse, error) {
	query, err := queries.NewGetTransactionQuery(actor, transactionID)
	if err != nil {
		return paymentResponse{}, err
	}
	tx, err := s.useCases.Transactions.Get(c.Request().Context(), query)
	if err != nil {
		return paymentResponse{}, err
	}

	resp := paymentResponse{Transaction: newTransactionResponse(tx)}
	if orderID != nil {
		view, err := s.orderView(c, actor, *orderID)
		if err != nil {
			return paymentResponse{}, err
		}
		o := newOrderResponse(view)
		resp.Order = &o
	}
	return resp, nil
}
