package match

import "time"

type EntryKind string

const (
	EntryDelivery EntryKind = "delivery"
	EntryVoid     EntryKind = "void"
)

// Entry is one append-only ledger record. A void entry cancels the delivery
// recorded under VoidsSequence; nothing is ever edited in place.
type Entry struct {
	MatchID       string
	InningsNumber int
	Sequence      int
	Kind          EntryKind
	Delivery      Delivery
	VoidsSequence int
	RecordedAt    time.Time
}

// Effective returns the deliveries still in force, in ledger order.
func Effective(entries []Entry) []Delivery {
	voided := make(map[int]struct{})
	for _, entry := range entries {
		if entry.Kind == EntryVoid {
			voided[entry.VoidsSequence] = struct{}{}
		}
	}

	out := make([]Delivery, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind != EntryDelivery {
			continue
		}
		if _, ok := voided[entry.Sequence]; ok {
			continue
		}
		out = append(out, entry.Delivery)
	}
	return out
}

// LastEffective returns the most recent delivery entry that has not been voided.
func LastEffective(entries []Entry) (Entry, bool) {
	voided := make(map[int]struct{})
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		switch entry.Kind {
		case EntryVoid:
			voided[entry.VoidsSequence] = struct{}{}
		case EntryDelivery:
			if _, ok := voided[entry.Sequence]; !ok {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// VoidLast builds the void entry that undoes the last effective delivery.
func VoidLast(entries []Entry, now time.Time) (Entry, error) {
	last, ok := LastEffective(entries)
	if !ok {
		return Entry{}, ErrNothingToUndo
	}
	return Entry{
		MatchID:       last.MatchID,
		InningsNumber: last.InningsNumber,
		Sequence:      len(entries) + 1,
		Kind:          EntryVoid,
		VoidsSequence: last.Sequence,
		RecordedAt:    now,
	}, nil
}
