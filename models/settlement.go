package models

// Settlement order statuses as reported by the external gateway.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)

// SettlementOrder is the handle of an order created with the external
// payment gateway. Amount is in minor units (fee x 100); Receipt carries the
// reservation id and is the key used to reconcile a paid order back to its
// reservation.
type SettlementOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
