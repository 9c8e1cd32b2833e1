package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"
)

// Kind groups notifications by what changed.
type Kind string

const (
	KindOrderUpdate     Kind = "order_update"
	KindPaymentUpdate   Kind = "payment_update"
	KindTransportUpdate Kind = "transport_update"
)

// Priority tells clients how prominently to show a notification.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Related model names, as shown to clients.
const (
	RelatedOrder     = "PurchaseOrder"
	RelatedTransport = "Transport"
	RelatedPayment   = "Transaction"
)

// Notification is a message for one user about a change in one object. It is a plain
// value: it is delivered and forgotten, never updated.
type Notification struct {
	ID           kernel.UUID
	UserID       kernel.UUID
	Kind         Kind
	Title        string
	Message      string
	RelatedID    kernel.UUID
	RelatedModel string
	ActionURL    string
	Icon         string
	Priority     Priority
	CreatedAt    time.Time
}

// Validate checks the fields every sink relies on.
func (n Notification) Validate() error {
	var errList []error
	errList = append(errList, n.ID.Validate(), n.UserID.Validate())
	if strings.TrimSpace(n.Title) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("title"))
	}
	if strings.TrimSpace(n.Message) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("message"))
	}
	return errors.Join(errList...)
}

// OrderPlaced tells the seller that a buyer placed an order for one of their listings.
func OrderPlaced(o *order.Order, at time.Time) Notification {
	return Notification{
		ID:     kernel.NewUUID(),
		UserID: o.SellerID(),
		Kind:   KindOrderUpdate,
		Title:  "New purchase order",
		Message: fmt.Sprintf("Order %s: %s %s at %s per %s, total %s.",
			o.Number(), o.Quantity().String(), o.Unit(), o.PricePerUnit(), o.Unit(), o.TotalAmount()),
		RelatedID:    o.ID(),
		RelatedModel: RelatedOrder,
		ActionURL:    "/orders/" + o.ID().String(),
		Icon:         "shopping-cart",
		Priority:     PriorityHigh,
		CreatedAt:    at,
	}
}

// OrderStatusChanged tells the recipient that an order moved to its current status.
func OrderStatusChanged(o *order.Order, recipient kernel.UUID, at time.Time) Notification {
	priority := PriorityMedium
	switch o.Status() { //nolint:exhaustive // other statuses use the default priority
	case order.Rejected, order.Cancelled:
		priority = PriorityHigh
	case order.Delivered:
		priority = PriorityLow
	}

	return Notification{
		ID:           kernel.NewUUID(),
		UserID:       recipient,
		Kind:         KindOrderUpdate,
		Title:        "Order " + humanize(o.Status().String()),
		Message:      fmt.Sprintf("Order %s is now %s.", o.Number(), humanize(o.Status().String())),
		RelatedID:    o.ID(),
		RelatedModel: RelatedOrder,
		ActionURL:    "/orders/" + o.ID().String(),
		Icon:         "package",
		Priority:     priority,
		CreatedAt:    at,
	}
}

// PaymentReceived tells the seller that the buyer paid towards an order.
func PaymentReceived(o *order.Order, tx *transaction.Transaction, at time.Time) Notification {
	return Notification{
		ID:     kernel.NewUUID(),
		UserID: o.SellerID(),
		Kind:   KindPaymentUpdate,
		Title:  "Payment received",
		Message: fmt.Sprintf("Payment of %s received for order %s via %s (%s).",
			tx.Amount(), o.Number(), humanize(tx.Method().String()), tx.Number()),
		RelatedID:    tx.ID(),
		RelatedModel: RelatedPayment,
		ActionURL:    "/transactions/" + tx.ID().String(),
		Icon:         "wallet",
		Priority:     PriorityHigh,
		CreatedAt:    at,
	}
}

// TransportStatusChanged tells the buyer where their produce is.
func TransportStatusChanged(t *transport.Transport, at time.Time) Notification {
	priority := PriorityMedium
	switch t.Status() { //nolint:exhaustive // other statuses use the default priority
	case transport.StatusDelayed, transport.StatusCancelled:
		priority = PriorityHigh
	}

	message := fmt.Sprintf("Your delivery is now %s.", humanize(t.Status().String()))
	if t.Status() == transport.StatusScheduled {
		message = fmt.Sprintf("Your delivery is scheduled for pickup on %s, expected by %s.",
			t.PickupDate().Format(time.DateOnly), t.EstimatedDeliveryDate().Format(time.DateTime))
	}

	return Notification{
		ID:           kernel.NewUUID(),
		UserID:       t.BuyerID(),
		Kind:         KindTransportUpdate,
		Title:        "Transport " + humanize(t.Status().String()),
		Message:      message,
		RelatedID:    t.ID(),
		RelatedModel: RelatedTransport,
		ActionURL:    "/transport/order/" + t.OrderID().String(),
		Icon:         "truck",
		Priority:     priority,
		CreatedAt:    at,
	}
}

func humanize(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}
