package queries

import (
	"context"

	"farmtrade/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError for unknown orders and UnauthorizedError when the
// actor is neither a party nor an admin.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := h.db.WithContext(ctx).
		Raw("SELECT "+orderColumns+orderFrom+" WHERE o.id = ?", query.OrderID().Bytes()).
		Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	view, err := rows[0].view()
	if err != nil {
		return OrderView{}, err
	}
	if !canRead(query.Actor(), view.BuyerID, view.SellerID) {
		return OrderView{}, errs.NewUnauthorizedError(query.Actor().ID(), "read order "+view.Number)
	}

	return view, nil
}
