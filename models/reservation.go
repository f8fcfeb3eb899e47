package models

import "time"

// ReservationStatus is the closed lifecycle state set of a reservation.
// Transitions are one-way: active -> cancelled or active -> completed.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// SettlementState tracks payment confirmation independently of the lifecycle
// state. The only transition is unpaid -> paid.
type SettlementState string

const (
	SettlementUnpaid SettlementState = "unpaid"
	SettlementPaid   SettlementState = "paid"
)

// Slot is one 30-minute (date label, time label) unit of provider time.
// Slots are never subdivided or merged.
type Slot struct {
	Date string `bson:"date" json:"date"`
	Time string `bson:"time" json:"time"`
}

// Reservation is a client's claim on one slot with a provider. Everything
// except Status and Settlement is immutable after creation.
type Reservation struct {
	ID         string            `bson:"id" json:"id"`
	ClientID   string            `bson:"clientId" json:"clientId"`
	ProviderID string            `bson:"providerId" json:"providerId"`
	Slot       Slot              `bson:"slot" json:"slot"`
	Provider   ProviderSnapshot  `bson:"provider" json:"provider"`
	Amount     float64           `bson:"amount" json:"amount"`
	Status     ReservationStatus `bson:"status" json:"status"`
	Settlement SettlementState   `bson:"settlement" json:"settlement"`
	CreatedAt  time.Time         `bson:"createdAt" json:"createdAt"`
}

// ProviderDashboard is a read-only rollup over a provider's reservation
// history.
type ProviderDashboard struct {
	Earnings     float64       `json:"earnings"`
	Reservations int           `json:"reservations"`
	Patients     int           `json:"patients"`
	Latest       []Reservation `json:"latest"`
}
