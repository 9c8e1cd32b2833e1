package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderView]{}, err
	}

	where, args, err := partyScope(query.Actor(), "o")
	if err != nil {
		return Page[OrderView]{}, err
	}
	if status := query.Status(); status != nil {
		where += " AND o.status = ?"
		args = append(args, status.String())
	}

	var total int64
	err = h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM orders o WHERE "+where, args...).
		Scan(&total).Error
	if err != nil {
		return Page[OrderView]{}, err
	}

	paging := query.Paging()
	var rows []orderRow
	err = h.db.WithContext(ctx).
		Raw("SELECT "+orderColumns+orderFrom+" WHERE "+where+
			" ORDER BY o.created_at DESC, o.number DESC OFFSET ? LIMIT ?",
			append(args, paging.Skip(), paging.Limit())...).
		Scan(&rows).Error
	if err != nil {
		return Page[OrderView]{}, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.view()
		if viewErr != nil {
			return Page[OrderView]{}, viewErr
		}
		views = append(views, view)
	}

	return newPage(views, total, paging), nil
}
