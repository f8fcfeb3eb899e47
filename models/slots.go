package models

import (
	"fmt"
	"time"
)

// SlotOption is one bookable 30-minute opening offered to a client.
type SlotOption struct {
	DateTime time.Time `json:"dateTime"`
	Time     string    `json:"time"`
}

// DaySlots groups the open slots of a single day of the horizon.
type DaySlots struct {
	Date  string       `json:"date"`
	Slots []SlotOption `json:"slots"`
}

// DateLabel renders t's date as the ledger key form "d_m_yyyy"
// (1-based month, no leading zeros).
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

// TimeLabel renders t's clock time as the ledger value form "03:04 PM".
func TimeLabel(t time.Time) string {
	return t.Format("03:04 PM")
}
