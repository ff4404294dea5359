package order

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/luu-sac/ceramics-api/internal/apperr"
	"github.com/luu-sac/ceramics-api/internal/events"
	"github.com/luu-sac/ceramics-api/internal/metrics"
	"github.com/luu-sac/ceramics-api/internal/payos"
	"github.com/luu-sac/ceramics-api/internal/product"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "order").Logger()

// Gateway is the slice of the PayOS client the order flow needs.
type Gateway interface {
	CreatePaymentRequest(ctx context.Context, req payos.CheckoutRequest) (*payos.CheckoutData, error)
	VerifyWebhook(raw []byte) (*payos.WebhookData, error)
}

// StatusCache is a best-effort read cache for order status. Failures are
// ignored: the database stays the source of truth.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID string, status Status)
	GetStatus(ctx context.Context, orderID string) (Status, bool)
}

type Service struct {
	orders   Repository
	products product.Repository
	gateway  Gateway
	events   events.Publisher
	cache    StatusCache
	webURL   string
}

func NewService(orders Repository, products product.Repository, gateway Gateway, pub events.Publisher, cache StatusCache, webURL string) *Service {
	return &Service{orders: orders, products: products, gateway: gateway, events: pub, cache: cache, webURL: webURL}
}

// Create validates the cart against the live catalog, then places the order
// atomically: stock decrement, order row and item snapshots commit together
// or not at all.
func (s *Service) Create(ctx context.Context, userID string, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperr.BadRequest("cart must have at least one item")
	}
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, apperr.BadRequest("quantity must be at least 1")
		}
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	prods, err := s.products.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("load products", err)
	}
	byID := make(map[string]*product.Product, len(prods))
	for i := range prods {
		if prods[i].Status == product.StatusActive {
			byID[prods[i].ID] = &prods[i]
		}
	}

	// Semantic validation before any write: existence, ACTIVE status, stock.
	total := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	for _, line := range req.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, apperr.BadRequest("product not found")
		}
		if p.Quantity < line.Quantity {
			return nil, apperr.BadRequest(
				fmt.Sprintf("insufficient stock: %s (only %d left)", p.Name, p.Quantity))
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, apperr.Internal("parse product price", err)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
	}

	o := &Order{
		ID:          uuid.NewString(),
		UserID:      userID,
		TotalAmount: total.String(),
		Status:      StatusPending,
		Items:       items,
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	if err := s.orders.Create(ctx, o); err != nil {
		var ise *InsufficientStockError
		if errors.As(err, &ise) {
			// Raced with a concurrent order; report with the product name.
			name := ise.ProductID
			if p, ok := byID[ise.ProductID]; ok {
				name = p.Name
			}
			return nil, apperr.BadRequest("insufficient stock: " + name)
		}
		return nil, apperr.Internal("create order", err)
	}

	metrics.OrdersCreated.Inc()
	if s.cache != nil {
		s.cache.SetStatus(ctx, o.ID, StatusPending)
	}
	s.publish(events.TopicOrderCreated, events.EventOrderCreated, o.ID,
		events.OrderCreatedPayload{OrderID: o.ID, UserID: userID, TotalAmount: o.TotalAmount})

	return s.orders.GetByID(ctx, o.ID)
}

// GetByID returns the order; non-admin callers may only read their own.
func (s *Service) GetByID(ctx context.Context, orderID, requesterID string, isAdmin bool) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal("load order", err)
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, apperr.Forbidden("you do not have access to this order")
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Order, int, error) {
	orders, total, err := s.orders.List(ctx, q)
	if err != nil {
		return nil, 0, apperr.Internal("list orders", err)
	}
	return orders, total, nil
}

// GetStatus serves the status read through the cache when possible.
func (s *Service) GetStatus(ctx context.Context, orderID, requesterID string, isAdmin bool) (Status, error) {
	if s.cache != nil && isAdmin {
		if st, ok := s.cache.GetStatus(ctx, orderID); ok {
			return st, nil
		}
	}
	o, err := s.GetByID(ctx, orderID, requesterID, isAdmin)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		s.cache.SetStatus(ctx, o.ID, o.Status)
	}
	return o.Status, nil
}

// UpdateStatus applies an administrative transition. The forward-only
// lifecycle is enforced; the write is conditional on the observed status so
// a concurrent webhook cannot be overwritten blindly.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, to Status) (*Order, error) {
	if !ValidStatus(string(to)) {
		return nil, apperr.BadRequest("invalid status")
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal("load order", err)
	}
	if !CanTransition(o.Status, to) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot transition order from %s to %s", o.Status, to))
	}
	ok, err := s.orders.UpdateStatusFrom(ctx, orderID, o.Status, to)
	if err != nil {
		return nil, apperr.Internal("update order status", err)
	}
	if !ok {
		return nil, apperr.Conflict("order status changed concurrently, retry")
	}

	if s.cache != nil {
		s.cache.SetStatus(ctx, orderID, to)
	}
	s.publish(events.TopicOrderStatusChanged, events.EventOrderStatusChanged, orderID,
		events.OrderStatusChangedPayload{OrderID: orderID, From: string(o.Status), To: string(to)})

	return s.orders.GetByID(ctx, orderID)
}

// CreatePaymentLink creates a hosted checkout link for a PENDING order and
// persists the gateway reference before returning, since the webhook
// reconciler finds the order through that reference.
func (s *Service) CreatePaymentLink(ctx context.Context, orderID, requesterID string, isAdmin bool) (*PaymentLink, error) {
	o, err := s.GetByID(ctx, orderID, requesterID, isAdmin)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPending {
		return nil, apperr.BadRequest("order is not awaiting payment")
	}

	total, err := decimal.NewFromString(o.TotalAmount)
	if err != nil {
		return nil, apperr.Internal("parse order total", err)
	}

	// Numeric order code for the gateway; timestamp-derived, not guaranteed
	// collision free under high concurrency.
	orderCode := time.Now().UnixMilli() % 1_000_000_000

	checkoutItems := make([]payos.CheckoutItem, 0, len(o.Items))
	for _, it := range o.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, apperr.Internal("parse item price", err)
		}
		checkoutItems = append(checkoutItems, payos.CheckoutItem{
			Name:     truncate(it.ProductName, payos.MaxItemNameLen),
			Quantity: it.Quantity,
			Price:    price.Round(0).IntPart(),
		})
	}

	data, err := s.gateway.CreatePaymentRequest(ctx, payos.CheckoutRequest{
		OrderCode:   orderCode,
		Amount:      total.Round(0).IntPart(),
		Description: "Don hang Luu Sac",
		Items:       checkoutItems,
		ReturnURL:   s.webURL + "/checkout/success",
		CancelURL:   s.webURL + "/checkout/cancel",
	})
	if err != nil {
		metrics.PaymentLinkFailures.Inc()
		logger.Error().Err(err).Str("order_id", orderID).Msg("payment link creation failed")
		return nil, apperr.External("payment link creation failed", err)
	}

	if err := s.orders.SetPaymentInfo(ctx, orderID, data.PaymentLinkID, fmt.Sprintf("%d", orderCode)); err != nil {
		return nil, apperr.Internal("persist payment info", err)
	}

	return &PaymentLink{CheckoutURL: data.CheckoutURL, PaymentLinkID: data.PaymentLinkID}, nil
}

// HandleWebhook verifies a gateway callback and reconciles the order status.
// Unknown references and repeated deliveries are acknowledged as no-ops so
// the gateway stops retrying.
func (s *Service) HandleWebhook(ctx context.Context, raw []byte) error {
	data, err := s.gateway.VerifyWebhook(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("webhook verification failed")
		return apperr.BadRequest("invalid webhook payload")
	}

	if data.Code != payos.CodeSuccess {
		logger.Warn().Str("code", data.Code).Int64("order_code", data.OrderCode).
			Msg("payment webhook with non-success code")
		return nil
	}

	ref := fmt.Sprintf("%d", data.OrderCode)
	orderID, updated, err := s.orders.MarkPaidByReference(ctx, ref)
	if err != nil {
		// Transient store failure: surface it so the gateway retries later.
		return apperr.Internal("mark order paid", err)
	}
	if !updated {
		logger.Info().Str("reference", ref).Msg("webhook for unknown or already-settled reference")
		return nil
	}

	metrics.OrdersPaid.Inc()
	if s.cache != nil {
		s.cache.SetStatus(ctx, orderID, StatusPaid)
	}
	s.publish(events.TopicOrderPaid, events.EventOrderPaid, orderID,
		events.OrderPaidPayload{OrderID: orderID, PaymentReference: ref})
	logger.Info().Str("order_id", orderID).Str("reference", ref).Msg("order marked paid")
	return nil
}

func (s *Service) publish(topic, eventType, orderID string, payload any) {
	if s.events == nil {
		return
	}
	s.events.Publish(topic, eventType, events.PartitionKey(orderID), events.MustMarshal(payload))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
