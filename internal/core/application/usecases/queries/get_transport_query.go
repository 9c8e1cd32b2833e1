package queries

import (
	"context"
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetTransportQueryIsNotConstructed = errors.New(
		"GetTransportQuery must be created via NewGetTransportQuery or NewGetTransportByOrderQuery constructor",
	)
)

// GetTransportQuery reads one transport leg, looked up either by its own id or by the
// id of its order.
type GetTransportQuery struct {
	actor   kernel.Actor
	id      kernel.UUID
	byOrder bool

	guard guard.ConstructorGuard
}

func NewGetTransportQuery(actor kernel.Actor, transportID kernel.UUID) (GetTransportQuery, error) {
	return newGetTransportQuery(actor, transportID, false)
}

func NewGetTransportByOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetTransportQuery, error) {
	return newGetTransportQuery(actor, orderID, true)
}

func newGetTransportQuery(actor kernel.Actor, id kernel.UUID, byOrder bool) (GetTransportQuery, error) {
	if err := errors.Join(actor.Validate(), id.Validate()); err != nil {
		return GetTransportQuery{}, err
	}
	return GetTransportQuery{actor: actor, id: id, byOrder: byOrder, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTransportQuery) Validate() error {
	return q.guard.Validate(ErrGetTransportQueryIsNotConstructed)
}

type GetTransportQueryHandler struct {
	db *gorm.DB
}

func NewGetTransportQueryHandler(db *gorm.DB) GetTransportQueryHandler {
	return GetTransportQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when there is no leg and UnauthorizedError when the
// actor is neither a party nor an admin.
func (h GetTransportQueryHandler) Handle(ctx context.Context, query GetTransportQuery) (TransportView, error) {
	if err := query.Validate(); err != nil {
		return TransportView{}, err
	}

	column, subject := "t.id", "transport"
	if query.byOrder {
		column, subject = "t.order_id", "transport for order"
	}

	var rows []transportRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+transportColumns+transportFrom+" WHERE "+column+" = ?", query.id.Bytes()).
		Scan(&rows).Error
	if err != nil {
		return TransportView{}, err
	}
	if len(rows) == 0 {
		return TransportView{}, errs.NewObjectNotFoundError(subject, query.id.String())
	}

	view, err := rows[0].view()
	if err != nil {
		return TransportView{}, err
	}
	if !canRead(query.actor, view.BuyerID, view.SellerID) {
		return TransportView{}, errs.NewUnauthorizedError(query.actor.ID(), "read transport "+view.ID.String())
	}

	return view, nil
}
