package models

import "time"

// Provider represents a bookable care provider. Profile fields are owned by
// the provider-management service; the booking engine only reads the fee and
// availability flag and mutates SlotsBooked.
type Provider struct {
	ID          string     `bson:"id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Speciality  string     `bson:"speciality" json:"speciality"`
	Degree      string     `bson:"degree" json:"degree,omitempty"`
	Experience  string     `bson:"experience" json:"experience,omitempty"`
	About       string     `bson:"about" json:"about,omitempty"`
	Fee         float64    `bson:"fee" json:"fee"`
	Address     string     `bson:"address" json:"address,omitempty"`
	Available   bool       `bson:"available" json:"available"`
	SlotsBooked SlotLedger `bson:"slotsBooked" json:"slotsBooked,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderSnapshot is the immutable slice of provider state embedded in a
// reservation at booking time. It is never re-fetched or re-synced.
type ProviderSnapshot struct {
	Name       string  `bson:"name" json:"name"`
	Speciality string  `bson:"speciality" json:"speciality"`
	Fee        float64 `bson:"fee" json:"fee"`
}

// Snapshot captures the provider fields a reservation denormalizes.
func (p *Provider) Snapshot() ProviderSnapshot {
	return ProviderSnapshot{
		Name:       p.Name,
		Speciality: p.Speciality,
		Fee:        p.Fee,
	}
}
