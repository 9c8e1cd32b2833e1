package queries

import (
	"context"
	"errors"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/pkg/errs"
	"farmtrade/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGetTransactionQueryIsNotConstructed = errors.New(
		"GetTransactionQuery must be created via NewGetTransactionQuery constructor",
	)
	ErrListTransactionsQueryIsNotConstructed = errors.New(
		"ListTransactionsQuery must be created via NewListTransactionsQuery constructor",
	)
	ErrTransactionStatsQueryIsNotConstructed = errors.New(
		"TransactionStatsQuery must be created via NewTransactionStatsQuery constructor",
	)
)

// TransactionView is the read model of a transaction. OrderNumber is empty for
// transactions not tied to an order.
type TransactionView struct {
	ID          kernel.UUID
	Number      string
	OrderID     *kernel.UUID
	OrderNumber string
	BuyerID     kernel.UUID
	SellerID    kernel.UUID
	Kind        string
	Amount      decimal.Decimal
	Method      string
	Status      string
	Description string
	Reference   string
	PaymentDate time.Time
	AppliedAt   *time.Time
	CreatedAt   time.Time
}

const transactionSelect = `
	SELECT
		x.id, x.number, x.order_id, COALESCE(o.number, '') AS order_number,
		x.buyer_id, x.seller_id, x.kind, x.amount, x.method, x.status,
		x.description, x.reference, x.payment_date, x.applied_at, x.created_at
	FROM transactions x
	LEFT JOIN orders o ON o.id = x.order_id
`

func scanTransactions(db *gorm.DB, sql string, args ...any) ([]TransactionView, error) {
	rows, err := db.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]TransactionView, 0)
	for rows.Next() {
		var (
			v                 TransactionView
			id, buyer, seller uuid.UUID
			orderID           uuid.NullUUID
		)
		err = rows.Scan(
			&id, &v.Number, &orderID, &v.OrderNumber,
			&buyer, &seller, &v.Kind, &v.Amount, &v.Method, &v.Status,
			&v.Description, &v.Reference, &v.PaymentDate, &v.AppliedAt, &v.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := uuids(id, buyer, seller)
		if idErr != nil {
			return nil, idErr
		}
		v.ID, v.BuyerID, v.SellerID = ids[0], ids[1], ids[2]
		if orderID.Valid {
			oid, oidErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if oidErr != nil {
				return nil, oidErr
			}
			v.OrderID = &oid
		}
		views = append(views, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// GetTransactionQuery reads one transaction for a party or an admin.
type GetTransactionQuery struct {
	actor kernel.Actor
	id    kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTransactionQuery(actor kernel.Actor, id kernel.UUID) (GetTransactionQuery, error) {
	if err := errors.Join(actor.Validate(), id.Validate()); err != nil {
		return GetTransactionQuery{}, err
	}
	return GetTransactionQuery{actor: actor, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTransactionQuery) Validate() error {
	return q.guard.Validate(ErrGetTransactionQueryIsNotConstructed)
}

// ListTransactionsQuery lists the actor's transactions newest first.
type ListTransactionsQuery struct {
	actor  kernel.Actor
	status *transaction.Status
	paging Paging

	guard guard.ConstructorGuard
}

func NewListTransactionsQuery(actor kernel.Actor, status string, skip, limit int) (ListTransactionsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListTransactionsQuery{}, err
	}
	paging, err := NewPaging(skip, limit)
	if err != nil {
		return ListTransactionsQuery{}, err
	}

	q := ListTransactionsQuery{actor: actor, paging: paging, guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, parseErr := transaction.ParseStatus(status)
		if parseErr != nil {
			return ListTransactionsQuery{}, parseErr
		}
		q.status = &parsed
	}
	return q, nil
}

func (q ListTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrListTransactionsQueryIsNotConstructed)
}

// TransactionStatsQuery summarises the actor's transactions.
type TransactionStatsQuery struct {
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewTransactionStatsQuery(actor kernel.Actor) (TransactionStatsQuery, error) {
	if err := actor.Validate(); err != nil {
		return TransactionStatsQuery{}, err
	}
	return TransactionStatsQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q TransactionStatsQuery) Validate() error {
	return q.guard.Validate(ErrTransactionStatsQueryIsNotConstructed)
}

// TransactionStats counts transactions by status. TotalAmount sums completed ones only.
type TransactionStats struct {
	TotalAmount           decimal.Decimal
	TotalTransactions     int64
	CompletedTransactions int64
	PendingTransactions   int64
	FailedTransactions    int64
}

// TransactionQueriesHandler serves every transaction read.
type TransactionQueriesHandler struct {
	db *gorm.DB
}

func NewTransactionQueriesHandler(db *gorm.DB) TransactionQueriesHandler {
	return TransactionQueriesHandler{db: db}
}

func (h TransactionQueriesHandler) Get(ctx context.Context, query GetTransactionQuery) (TransactionView, error) {
	if err := query.Validate(); err != nil {
		return TransactionView{}, err
	}

	views, err := scanTransactions(h.db.WithContext(ctx), transactionSelect+" WHERE x.id = ?", query.id.Bytes())
	if err != nil {
		return TransactionView{}, err
	}
	if len(views) == 0 {
		return TransactionView{}, errs.NewObjectNotFoundError("transaction", query.id.String())
	}
	if !canRead(query.actor, views[0].BuyerID, views[0].SellerID) {
		return TransactionView{}, errs.NewUnauthorizedError(query.actor.ID(), "read transaction "+views[0].Number)
	}
	return views[0], nil
}

func (h TransactionQueriesHandler) List(
	ctx context.Context,
	query ListTransactionsQuery,
) (Page[TransactionView], error) {
	if err := query.Validate(); err != nil {
		return Page[TransactionView]{}, err
	}

	where, args, err := partyScope(query.actor, "x")
	if err != nil {
		return Page[TransactionView]{}, err
	}
	if query.status != nil {
		where += " AND x.status = ?"
		args = append(args, query.status.String())
	}

	var total int64
	if err = h.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM transactions x WHERE "+where, args...).
		Scan(&total).Error; err != nil {
		return Page[TransactionView]{}, err
	}

	views, err := scanTransactions(h.db.WithContext(ctx),
		transactionSelect+" WHERE "+where+" ORDER BY x.created_at DESC, x.number DESC OFFSET ? LIMIT ?",
		append(args, query.paging.Skip(), query.paging.Limit())...)
	if err != nil {
		return Page[TransactionView]{}, err
	}

	return newPage(views, total, query.paging), nil
}

func (h TransactionQueriesHandler) Stats(ctx context.Context, query TransactionStatsQuery) (TransactionStats, error) {
	if err := query.Validate(); err != nil {
		return TransactionStats{}, err
	}

	where, args, err := partyScope(query.actor, "x")
	if err != nil {
		return TransactionStats{}, err
	}

	var stats TransactionStats
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(x.amount) FILTER (WHERE x.status = 'completed'), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE x.status = 'completed'),
			COUNT(*) FILTER (WHERE x.status = 'pending'),
			COUNT(*) FILTER (WHERE x.status = 'failed')
		FROM transactions x
		WHERE `+where, args...).
		Row().
		Scan(
			&stats.TotalAmount,
			&stats.TotalTransactions,
			&stats.CompletedTransactions,
			&stats.PendingTransactions,
			&stats.FailedTransactions,
		)
	if err != nil {
		return TransactionStats{}, err
	}
	return stats, nil
}
