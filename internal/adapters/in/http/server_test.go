package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "farmtrade/internal/adapters/in/http"
	"farmtrade/internal/core/application/usecases/commands"
	"farmtrade/internal/core/application/usecases/queries"
	"farmtrade/internal/core/domain/model/kernel"
	"farmtrade/internal/core/domain/model/order"
	"farmtrade/internal/core/domain/model/transaction"
	"farmtrade/internal/core/domain/model/transport"
	"farmtrade/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total int64 `json:"total"`
		Skip  int   `json:"skip"`
		Limit int   `json:"limit"`
	} `json:"pagination"`
}

type caller struct {
	id   kernel.UUID
	role kernel.Role
}

func buyer() caller  { return caller{id: kernel.NewUUID(), role: kernel.RoleBuyer} }
func farmer() caller { return caller{id: kernel.NewUUID(), role: kernel.RoleFarmer} }
func admin() caller  { return caller{id: kernel.NewUUID(), role: kernel.RoleAdmin} }

func newEcho(t *testing.T, useCases httpadapter.UseCases) *echo.Echo {
	t.Helper()
	doc, err := httpadapter.LoadAPIDoc()
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	e := echo.New()
	httpadapter.NewServer(useCases, doc, logger).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, who *caller, method, path, body string) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(httpadapter.HeaderUserID, who.id.String())
		req.Header.Set(httpadapter.HeaderUserRole, string(who.role))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp response
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func money(t *testing.T, v string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(v))
	require.NoError(t, err)
	return m
}

func pendingOrder(t *testing.T, buyerID, sellerID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2501-00001", buyerID, sellerID, kernel.NewUUID(), order.Terms{
		Quantity:     decimal.NewFromInt(100),
		Unit:         order.UnitKg,
		PricePerUnit: money(t, "20"),
	}, time.Now())
	require.NoError(t, err)
	return o
}

func orderView(o *order.Order) queries.OrderView {
	return queries.OrderView{
		ID:            o.ID(),
		Number:        o.Number(),
		BuyerID:       o.BuyerID(),
		SellerID:      o.SellerID(),
		ListingID:     o.ListingID(),
		CropName:      "Wheat",
		Quantity:      o.Quantity(),
		Unit:          o.Unit().String(),
		PricePerUnit:  o.PricePerUnit().Amount(),
		TotalAmount:   o.TotalAmount().Amount(),
		AmountPaid:    o.AmountPaid().Amount(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

func TestServer_PublicRoutes(t *testing.T) {
	e := newEcho(t, httpadapter.UseCases{})

	t.Run("health", func(t *testing.T) {
		rec, resp := do(t, e, nil, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Success)
	})

	t.Run("openapi document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/transactions/record-payment")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, resp := do(t, e, nil, http.MethodGet, "/nothing-here", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, resp.Success)
	})
}

func TestServer_Identity(t *testing.T) {
	e := newEcho(t, httpadapter.UseCases{})
	path := "/orders/" + kernel.NewUUID().String() + "/accept"

	t.Run("should require identity headers", func(t *testing.T) {
		rec, resp := do(t, e, nil, http.MethodPut, path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, resp.Success)
	})

	t.Run("should reject a malformed user id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpadapter.HeaderUserID, "someone")
		req.Header.Set(httpadapter.HeaderUserRole, "farmer")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		who := caller{id: kernel.NewUUID(), role: kernel.Role("courier")}
		rec, _ := do(t, e, &who, http.MethodPut, path, `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should forbid roles outside the route", func(t *testing.T) {
		who := buyer()
		rec, resp := do(t, e, &who, http.MethodPut, path, `{}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, resp.Message, "buyer")
	})
}

func TestServer_CreateOrder(t *testing.T) {
	who := buyer()
	sellerID, listingID := kernel.NewUUID(), kernel.NewUUID()
	body := fmt.Sprintf(`{"farmerId":%q,"cropId":%q,"quantity":100,"unit":"kg","pricePerUnit":20,`+
		`"quality":{"description":"Grade A"},"notes":"deliver early"}`, sellerID, listingID)

	t.Run("should place the order and return its view", func(t *testing.T) {
		createOrder, getOrder := new(MockCreateOrder), new(MockGetOrder)
		o := pendingOrder(t, who.id, sellerID)

		createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.Actor().Is(who.id) &&
				cmd.SellerID().IsEqual(sellerID) &&
				cmd.ListingID().IsEqual(listingID) &&
				cmd.Quantity().Equal(decimal.NewFromInt(100)) &&
				cmd.Quality().Description == "Grade A" &&
				cmd.Notes() == "deliver early"
		})).Return(o, nil).Once()
		getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
			return q.OrderID().IsEqual(o.ID())
		})).Return(orderView(o), nil).Once()

		e := newEcho(t, httpadapter.UseCases{CreateOrder: createOrder, GetOrder: getOrder})
		rec, resp := do(t, e, &who, http.MethodPost, "/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.True(t, resp.Success)

		var data map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "ORD-2501-00001", data["orderNumber"])
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "Wheat", data["cropName"])
		assert.Equal(t, sellerID.String(), data["farmerId"])
		createOrder.AssertExpectations(t)
		getOrder.AssertExpectations(t)
	})

	t.Run("should reject bodies that do not match the document", func(t *testing.T) {
		createOrder := new(MockCreateOrder)
		e := newEcho(t, httpadapter.UseCases{CreateOrder: createOrder})

		rec, resp := do(t, e, &who, http.MethodPost, "/orders", `{"farmerId":"`+sellerID.String()+`","quantity":5}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, resp.Success)
		createOrder.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("should report missing listings as not found", func(t *testing.T) {
		createOrder := new(MockCreateOrder)
		createOrder.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("listing", listingID.String())).Once()

		e := newEcho(t, httpadapter.UseCases{CreateOrder: createOrder})
		rec, resp := do(t, e, &who, http.MethodPost, "/orders", body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, resp.Message, "listing")
	})
}

func TestServer_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid transition", fmt.Errorf("accept: %w", errs.ErrInvalidTransition), http.StatusConflict},
		{"invalid state", fmt.Errorf("accept: %w", errs.ErrInvalidState), http.StatusConflict},
		{"not the seller", fmt.Errorf("accept: %w", errs.ErrUnauthorized), http.StatusForbidden},
		{"validation", errs.NewValueIsRequiredError("notes"), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			who := farmer()
			accept := new(MockAcceptOrder)
			accept.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			e := newEcho(t, httpadapter.UseCases{AcceptOrder: accept})
			rec, resp := do(t, e, &who, http.MethodPut, "/orders/"+kernel.NewUUID().String()+"/accept", `{"notes":"ok"}`)

			assert.Equal(t, tt.code, rec.Code)
			assert.False(t, resp.Success)
			if tt.code == http.StatusInternalServerError {
				assert.Equal(t, "internal server error", resp.Message)
			}
		})
	}

	t.Run("status codes of the error taxonomy", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, httpadapter.StatusOf(fmt.Errorf("x: %w", errs.ErrOverpayment)))
		assert.Equal(t, http.StatusBadRequest, httpadapter.StatusOf(errs.ErrValueIsOutOfRange))
		assert.Equal(t, http.StatusConflict, httpadapter.StatusOf(errs.ErrConflict))
		assert.Equal(t, http.StatusNotFound, httpadapter.StatusOf(errs.ErrObjectNotFound))
	})
}

func TestServer_ListOrders(t *testing.T) {
	t.Run("should pass filters and return pagination", func(t *testing.T) {
		who := farmer()
		listOrders := new(MockListOrders)
		o := pendingOrder(t, kernel.NewUUID(), who.id)

		listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
			return q.Actor().Is(who.id) &&
				q.Status() != nil && *q.Status() == order.Pending &&
				q.Paging().Skip() == 10 && q.Paging().Limit() == 5
		})).Return(queries.Page[queries.OrderView]{
			Items: []queries.OrderView{orderView(o)},
			Total: 11,
			Skip:  10,
			Limit: 5,
		}, nil).Once()

		e := newEcho(t, httpadapter.UseCases{ListOrders: listOrders})
		rec, resp := do(t, e, &who, http.MethodGet, "/orders?status=pending&skip=10&limit=5", "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NotNil(t, resp.Pagination)
		assert.Equal(t, int64(11), resp.Pagination.Total)
		assert.Equal(t, 5, resp.Pagination.Limit)

		var items []map[string]any
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		assert.Len(t, items, 1)
		listOrders.AssertExpectations(t)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		who := buyer()
		e := newEcho(t, httpadapter.UseCases{ListOrders: new(MockListOrders)})

		rec, _ := do(t, e, &who, http.MethodGet, "/orders?status=shipped", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a limit above the maximum", func(t *testing.T) {
		who := buyer()
		e := newEcho(t, httpadapter.UseCases{ListOrders: new(MockListOrders)})

		rec, _ := do(t, e, &who, http.MethodGet, "/orders?limit=500", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_RecordPayment(t *testing.T) {
	who := buyer()
	sellerID := kernel.NewUUID()
	o := pendingOrder(t, who.id, sellerID)
	tx, err := transaction.NewPayment(kernel.NewUUID(), "TXN-2501-00001", o.ID(), who.id, sellerID,
		money(t, "600"), transaction.MethodUPI, "UTR123", "", time.Now())
	require.NoError(t, err)

	record, transactions, getOrder := new(MockRecordPayment), new(MockTransactions), new(MockGetOrder)
	record.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RecordPaymentCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) &&
			cmd.Amount().Equal(money(t, "600")) &&
			cmd.Method() == transaction.MethodUPI &&
			cmd.Reference() == "UTR123"
	})).Return(commands.RecordPaymentResult{Transaction: tx, Order: o, Applied: true}, nil).Once()
	transactions.On("Get", mock.Anything, mock.Anything).Return(queries.TransactionView{
		ID:          tx.ID(),
		Number:      tx.Number(),
		OrderID:     tx.OrderID(),
		OrderNumber: o.Number(),
		BuyerID:     who.id,
		SellerID:    sellerID,
		Kind:        tx.Kind().String(),
		Amount:      tx.Amount().Amount(),
		Method:      tx.Method().String(),
		Status:      tx.Status().String(),
		PaymentDate: tx.PaymentDate(),
		CreatedAt:   tx.CreatedAt(),
	}, nil).Once()
	getOrder.On("Handle", mock.Anything, mock.Anything).Return(orderView(o), nil).Once()

	e := newEcho(t, httpadapter.UseCases{RecordPayment: record, Transactions: transactions, GetOrder: getOrder})
	body := fmt.Sprintf(`{"orderId":%q,"paymentMethod":"upi","amount":600,"referenceNumber":"UTR123"}`, o.ID())
	rec, resp := do(t, e, &who, http.MethodPost, "/transactions/record-payment", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		Transaction map[string]any `json:"transaction"`
		Order       map[string]any `json:"order"`
		Applied     bool           `json:"applied"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.Applied)
	assert.Equal(t, "TXN-2501-00001", data.Transaction["transactionId"])
	assert.Equal(t, "ORD-2501-00001", data.Order["orderNumber"])
	mock.AssertExpectationsForObjects(t, record, transactions, getOrder)
}

func TestServer_TransactionStats(t *testing.T) {
	who := admin()
	transactions := new(MockTransactions)
	transactions.On("Stats", mock.Anything, mock.Anything).Return(queries.TransactionStats{
		TotalAmount:           decimal.RequireFromString("1749.50"),
		TotalTransactions:     4,
		CompletedTransactions: 3,
		FailedTransactions:    1,
	}, nil).Once()

	e := newEcho(t, httpadapter.UseCases{Transactions: transactions})
	rec, resp := do(t, e, &who, http.MethodGet, "/transactions/stats/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "1749.5", data["totalAmount"])
	assert.EqualValues(t, 3, data["completedTransactions"])
}

func TestServer_UpdateTransportStatus(t *testing.T) {
	who := farmer()
	transportID := kernel.NewUUID()

	update, getTransport := new(MockUpdateTransportStatus), new(MockGetTransport)
	update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateTransportStatusCommand) bool {
		change := cmd.Change()
		return cmd.TransportID().IsEqual(transportID) &&
			change.Status == transport.StatusInTransit &&
			change.Location != nil && change.Location.Latitude() == 18.52
	})).Return(nil, nil).Once()
	getTransport.On("Handle", mock.Anything, mock.Anything).Return(queries.TransportView{
		ID:      transportID,
		Status:  "in_transit",
		Photos:  []string{},
		Samples: []queries.SampleView{},
	}, nil).Once()

	e := newEcho(t, httpadapter.UseCases{UpdateTransportStatus: update, GetTransport: getTransport})
	body := `{"status":"in_transit","currentLocation":{"latitude":18.52,"longitude":73.85},"notes":"left the farm"}`
	rec, resp := do(t, e, &who, http.MethodPut, "/transport/"+transportID.String()+"/status", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "in_transit", data["status"])
	assert.Equal(t, []any{}, data["photos"])
	mock.AssertExpectationsForObjects(t, update, getTransport)

	t.Run("should reject an invalid path id", func(t *testing.T) {
		rec, _ := do(t, e, &who, http.MethodPut, "/transport/not-a-uuid/status", `{"status":"delivered"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		rec, _ := do(t, e, &who, http.MethodPut, "/transport/"+transportID.String()+"/status", `{"status":"lost"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
