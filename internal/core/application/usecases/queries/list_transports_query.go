package queries

import (
	"context"
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListTransportsQueryIsNotConstructed = errors.New(
		"ListTransportsQuery must be created via NewListTransportsQuery constructor",
	)
)

// ListTransportsQuery lists legs the actor takes part in, newest first, optionally
// filtered by status.
type ListTransportsQuery struct {
	actor  kernel.Actor
	status *transport.Status
	paging Paging

	guard guard.ConstructorGuard
}

func NewListTransportsQuery(actor kernel.Actor, status string, skip, limit int) (ListTransportsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListTransportsQuery{}, err
	}
	paging, err := NewPaging(skip, limit)
	if err != nil {
		return ListTransportsQuery{}, err
	}

	q := ListTransportsQuery{actor: actor, paging: paging, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, parseErr := transport.ParseStatus(status)
		if parseErr != nil {
			return ListTransportsQuery{}, parseErr
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListTransportsQuery) Validate() error {
	return q.guard.Validate(ErrListTransportsQueryIsNotConstructed)
}

type ListTransportsQueryHandler struct {
	db *gorm.DB
}

func NewListTransportsQueryHandler(db *gorm.DB) ListTransportsQueryHandler {
	return ListTransportsQueryHandler{db: db}
}

func (h ListTransportsQueryHandler) Handle(
	ctx context.Context,
	query ListTransportsQuery,
) (Page[TransportView], error) {
	if err := query.Validate(); err != nil {
		return Page[TransportView]{}, err
	}

	where, args, err := partyScope(query.actor, "t")
	if err != nil {
		return Page[TransportView]{}, err
	}
	if query.status != nil {
		where += " AND t.status = ?"
		args = append(args, query.status.String())
	}

	var total int64
	if err = h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM transports t WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return Page[TransportView]{}, err
	}

	var rows []transportRow
	if err = h.db.WithContext(ctx).
		Raw("SELECT "+transportColumns+transportFrom+" WHERE "+where+
			" ORDER BY t.created_at DESC OFFSET ? LIMIT ?",
			append(args, query.paging.Skip(), query.paging.Limit())...).
		Scan(&rows).Error; err != nil {
		return Page[TransportView]{}, err
	}

	views := make([]TransportView, 0, len(rows))
	for _, row := range rows {
		view, viewErr := row.view()
		if viewErr != nil {
			return Page[TransportView]{}, viewErr
		}
		views = append(views, view)
	}

	return newPage(views, total, query.paging), nil
}
