// Package queries contains the read side of fulfillment: raw SQL over the tables the
// repositories write, returning flat read models. Every query is scoped to what the
// acting user may see.
package queries

import (
	"fmt"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/pkg/errs"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Paging is an offset window over a newest-first list.
type Paging struct {
	skip  int
	limit int
}

// NewPaging validates a window. A zero limit means DefaultLimit.
func NewPaging(skip, limit int) (Paging, error) {
	if skip < 0 {
		return Paging{}, errs.NewValueIsOutOfRangeError("skip", skip, 0, "unbounded")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Paging{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxLimit)
	}
	return Paging{skip: skip, limit: limit}, nil
}

func (p Paging) Skip() int  { return p.skip }
func (p Paging) Limit() int { return p.limit }

// Page is one window of a list together with the size of the whole list.
type Page[T any] struct {
	Items []T
	Total int64
	Skip  int
	Limit int
}

func newPage[T any](items []T, total int64, p Paging) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{Items: items, Total: total, Skip: p.skip, Limit: p.limit}
}

// partyScope restricts a list to rows the actor is a party of. Admins see everything.
// alias is the table alias carrying buyer_id and seller_id.
func partyScope(actor kernel.Actor, alias string) (string, []any, error) {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return "TRUE", nil, nil
	case kernel.RoleBuyer:
		return alias + ".buyer_id = ?", []any{actor.ID().Bytes()}, nil
	case kernel.RoleFarmer:
		return alias + ".seller_id = ?", []any{actor.ID().Bytes()}, nil
	default:
		return "", nil, errs.NewUnauthorizedError(actor.ID(), fmt.Sprintf("list as %q", actor.Role()))
	}
}

func canRead(actor kernel.Actor, buyerID, sellerID kernel.UUID) bool {
	return actor.IsAdmin() || actor.Is(buyerID) || actor.Is(sellerID)
}
