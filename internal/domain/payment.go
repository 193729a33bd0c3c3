package domain

import "context"

// PaymentProvider is the seam where a real gateway would plug in. A nil
// return means the payment was authorized and captured; ErrPaymentDeclined
// means the gateway refused it. Implementations must honor ctx so callers
// can bound how long an authorization may block.
type PaymentProvider interface {
	Authorize(ctx context.Context, order *Order) error
}
