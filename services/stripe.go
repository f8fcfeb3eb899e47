package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"carebook/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

const receiptMetadataKey = "receipt"

// StripeGateway implements SettlementGateway on Stripe payment intents. It
// holds its own client and credentials rather than mutating the package
// global stripe key, so a fake can be substituted in tests.
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway constructs a gateway with a bounded HTTP timeout; an
// unreachable gateway surfaces as gatewayUnavailable, it never hangs the
// caller.
func NewStripeGateway(apiKey string, logger *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(apiKey, stripe.NewBackends(&http.Client{Timeout: 15 * time.Second}))
	return &StripeGateway{api: api, logger: logger}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.SettlementOrder, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	params.AddMetadata(receiptMetadataKey, receipt)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, g.mapErr("create order", err)
	}
	return orderFromIntent(pi), nil
}

// FetchOrder retrieves the current order state. A transient gateway failure
// is retried exactly once; business outcomes are never retried.
func (g *StripeGateway) FetchOrder(ctx context.Context, orderID string) (*models.SettlementOrder, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(orderID, params)
	if err != nil && isTransientStripeErr(err) {
		pi, err = g.api.PaymentIntents.Get(orderID, params)
	}
	if err != nil {
		return nil, g.mapErr("fetch order", err)
	}
	return orderFromIntent(pi), nil
}

func orderFromIntent(pi *stripe.PaymentIntent) *models.SettlementOrder {
	status := models.OrderStatusCreated
	if pi.Status == stripe.PaymentIntentStatusSucceeded {
		status = models.OrderStatusPaid
	}
	return &models.SettlementOrder{
		ID:       pi.ID,
		Amount:   pi.Amount,
		Currency: string(pi.Currency),
		Receipt:  pi.Metadata[receiptMetadataKey],
		Status:   status,
	}
}

func (g *StripeGateway) mapErr(op string, err error) error {
	if isTransientStripeErr(err) {
		g.logger.Warn("settlement gateway unavailable", zap.String("op", op), zap.Error(err))
		return NewError(CodeGatewayUnavailable, "payment gateway unavailable")
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

func isTransientStripeErr(err error) bool {
	var se *stripe.Error
	if errors.As(err, &se) {
		return se.HTTPStatusCode >= http.StatusInternalServerError
	}
	// Timeouts and transport failures reach us as plain errors.
	return errors.Is(err, context.DeadlineExceeded) || isTimeout(err)
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}
