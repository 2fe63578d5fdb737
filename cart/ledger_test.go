package cart

import (
	"errors"
	"testing"

	"learnmart/apperrors"
	"learnmart/models"
	"learnmart/storage"
)

func courseA() models.CartItem {
	return models.CartItem{CourseID: "a", Name: "Course A", Price: 500}
}

func courseB() models.CartItem {
	return models.CartItem{CourseID: "b", Name: "Course B", Price: 1500}
}

func newTestLedger(t *testing.T, kv storage.KV) *Ledger {
	t.Helper()
	l, err := NewLedger(kv)
	if err != nil {
		t.Fatalf("NewLedger failed: %v", err)
	}
	return l
}

func TestAddRemove_TotalsStayConsistent(t *testing.T) {
	l := newTestLedger(t, storage.NewMemory())

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := l.AddItem(courseB()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if l.Total() != 2000 || l.Count() != 2 {
		t.Fatalf("expected total=2000 count=2, got total=%v count=%d", l.Total(), l.Count())
	}

	if err := l.RemoveItem("a"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if l.Total() != 1500 || l.Count() != 1 {
		t.Fatalf("expected total=1500 count=1, got total=%v count=%d", l.Total(), l.Count())
	}

	// Invariant: total == sum of item prices, count == len(items)
	var sum float64
	for _, item := range l.Items() {
		sum += item.Price
	}
	if l.Total() != sum || l.Count() != len(l.Items()) {
		t.Fatalf("ledger invariant broken: total=%v sum=%v count=%d items=%d",
			l.Total(), sum, l.Count(), len(l.Items()))
	}
}

func TestAddItem_RejectsDuplicateAtAnyIndex(t *testing.T) {
	l := newTestLedger(t, storage.NewMemory())

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	// Duplicate of the first item, not just a later one
	if err := l.AddItem(courseA()); !errors.Is(err, apperrors.ErrAlreadyInCart) {
		t.Fatalf("expected ErrAlreadyInCart, got %v", err)
	}
	if l.Count() != 1 || l.Total() != 500 {
		t.Fatalf("duplicate add changed the ledger: count=%d total=%v", l.Count(), l.Total())
	}

	if err := l.AddItem(courseB()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := l.AddItem(courseB()); !errors.Is(err, apperrors.ErrAlreadyInCart) {
		t.Fatalf("expected ErrAlreadyInCart for later index, got %v", err)
	}
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	kv := storage.NewMemory()
	l := newTestLedger(t, kv)

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := l.RemoveItem("nope"); err != nil {
		t.Fatalf("RemoveItem of absent id failed: %v", err)
	}
	if l.Count() != 1 || l.Total() != 500 {
		t.Fatalf("no-op remove changed the ledger: count=%d total=%v", l.Count(), l.Total())
	}
}

func TestLedger_PersistsAcrossReload(t *testing.T) {
	kv := storage.NewMemory()
	l := newTestLedger(t, kv)

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := l.AddItem(courseB()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	reloaded := newTestLedger(t, kv)
	if reloaded.Total() != 2000 || reloaded.Count() != 2 {
		t.Fatalf("reload lost state: total=%v count=%d", reloaded.Total(), reloaded.Count())
	}
	if got := reloaded.CheckoutSet(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("checkout set order lost on reload: %v", got)
	}
}

func TestReset_DeletesPersistedKeys(t *testing.T) {
	kv := storage.NewMemory()
	l := newTestLedger(t, kv)

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := l.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// Keys must be gone, not zeroed
	for _, key := range []string{"cart", "total", "totalItems"} {
		if kv.Has(key) {
			t.Fatalf("Reset left key %q behind", key)
		}
	}

	// A fresh add after reset reproduces a pristine one-item ledger
	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem after reset failed: %v", err)
	}

	pristineKV := storage.NewMemory()
	pristine := newTestLedger(t, pristineKV)
	if err := pristine.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if l.Total() != pristine.Total() || l.Count() != pristine.Count() {
		t.Fatalf("reset+add diverged from pristine: total=%v/%v count=%d/%d",
			l.Total(), pristine.Total(), l.Count(), pristine.Count())
	}
}

func TestCheckoutSet_DoesNotMutate(t *testing.T) {
	l := newTestLedger(t, storage.NewMemory())

	if err := l.AddItem(courseA()); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	ids := l.CheckoutSet()
	if len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("unexpected checkout set: %v", ids)
	}
	if l.Count() != 1 {
		t.Fatal("CheckoutSet must not mutate the ledger")
	}
}
