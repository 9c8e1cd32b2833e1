package queries

import (
	"errors"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/pkg/guard"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersQuery lists the actor's orders newest first: as buyer for buyers, as seller
// for farmers, all of them for admins.
type ListOrdersQuery struct {
	actor  kernel.Actor
	status *order.Status
	paging Paging

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status lists every status.
func NewListOrdersQuery(actor kernel.Actor, status string, skip, limit int) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	paging, err := NewPaging(skip, limit)
	if err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{actor: actor, paging: paging, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, parseErr := order.ParseStatus(status)
		if parseErr != nil {
			return ListOrdersQuery{}, parseErr
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor   { return q.actor }
func (q ListOrdersQuery) Status() *order.Status { return q.status }
func (q ListOrdersQuery) Paging() Paging        { return q.paging }
