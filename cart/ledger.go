package cart

import (
	"learnmart/apperrors"
	"learnmart/models"
	"learnmart/storage"
)

// The ledger persists three parallel keys. They are always written in the
// same order, in the same turn, so a reload never sees a torn state.
const (
	itemsKey = "cart"
	totalKey = "total"
	countKey = "totalItems"
)

// Ledger tracks purchase-intent items and their aggregate price. It is the
// single owner of the persisted cart keys; callers mutate it only through
// AddItem/RemoveItem/Reset.
type Ledger struct {
	store storage.KV
	items []models.CartItem
	total float64
	count int
}

// NewLedger loads any previously persisted cart state from the store
func NewLedger(kv storage.KV) (*Ledger, error) {
	l := &Ledger{store: kv}

	if _, err := kv.Get(itemsKey, &l.items); err != nil {
		return nil, err
	}
	if _, err := kv.Get(totalKey, &l.total); err != nil {
		return nil, err
	}
	if _, err := kv.Get(countKey, &l.count); err != nil {
		return nil, err
	}

	return l, nil
}

// AddItem appends a course to the cart. A course already present at any
// index is rejected with ErrAlreadyInCart and nothing changes.
func (l *Ledger) AddItem(item models.CartItem) error {
	for _, existing := range l.items {
		if existing.CourseID == item.CourseID {
			return apperrors.ErrAlreadyInCart
		}
	}

	l.items = append(l.items, item)
	l.total += item.Price
	l.count = len(l.items)
	return l.persist()
}

// RemoveItem removes a course from the cart. An absent course is a no-op.
func (l *Ledger) RemoveItem(courseID string) error {
	idx := -1
	for i, item := range l.items {
		if item.CourseID == courseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	l.total -= l.items[idx].Price
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.count = len(l.items)
	return l.persist()
}

// Reset empties the ledger and deletes the persisted keys outright, so a
// consumer probing storage sees "no cart" rather than "empty cart".
func (l *Ledger) Reset() error {
	l.items = nil
	l.total = 0
	l.count = 0

	if err := l.store.Delete(itemsKey); err != nil {
		return err
	}
	if err := l.store.Delete(totalKey); err != nil {
		return err
	}
	return l.store.Delete(countKey)
}

// CheckoutSet returns the ordered course ids currently in the cart. It does
// not mutate the ledger; clearing happens only on confirmed purchase.
func (l *Ledger) CheckoutSet() []string {
	ids := make([]string, len(l.items))
	for i, item := range l.items {
		ids[i] = item.CourseID
	}
	return ids
}

// Items returns a copy of the cart contents
func (l *Ledger) Items() []models.CartItem {
	out := make([]models.CartItem, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Total() float64 { return l.total }
func (l *Ledger) Count() int     { return l.count }

// persist writes items, then total, then count
func (l *Ledger) persist() error {
	if err := l.store.Set(itemsKey, l.items); err != nil {
		return err
	}
	if err := l.store.Set(totalKey, l.total); err != nil {
		return err
	}
	return l.store.Set(countKey, l.count)
}
