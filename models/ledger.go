package models

import "errors"

// ErrSlotTaken is returned by SlotLedger.Book when the slot is already held.
var ErrSlotTaken = errors.New("slot already booked")

// SlotLedger maps a date label ("2_6_2024") to the set of time labels
// ("10:00 AM") already booked on that date. It is the per-provider source of
// truth for capacity. Labels are opaque keys compared by exact string form.
type SlotLedger map[string][]string

// IsBooked reports whether the (date, time) pair is present in the ledger.
func (l SlotLedger) IsBooked(date, timeLabel string) bool {
	for _, t := range l[date] {
		if t == timeLabel {
			return true
		}
	}
	return false
}

// Book inserts the (date, time) pair. It fails with ErrSlotTaken when the
// pair is already present; a time label never appears twice for one date.
func (l SlotLedger) Book(date, timeLabel string) error {
	if l.IsBooked(date, timeLabel) {
		return ErrSlotTaken
	}
	l[date] = append(l[date], timeLabel)
	return nil
}

// Release removes the (date, time) pair. Releasing an absent pair is a no-op.
func (l SlotLedger) Release(date, timeLabel string) {
	times := l[date]
	for i, t := range times {
		if t == timeLabel {
			l[date] = append(times[:i:i], times[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the ledger.
func (l SlotLedger) Clone() SlotLedger {
	out := make(SlotLedger, len(l))
	for date, times := range l {
		out[date] = append([]string(nil), times...)
	}
	return out
}
