package engine

import "testing"

func TestHandAddAllRespectsCap(t *testing.T) {
	h := NewHand(3)
	if err := h.AddAll([]Card{c(ColorBlue, 1), c(ColorBlue, 2)}); err != nil {
		t.Fatalf("AddAll under cap: %v", err)
	}
	err := h.AddAll([]Card{c(ColorBlue, 3), c(ColorBlue, 4)})
	if err == nil {
		t.Fatal("AddAll past cap succeeded")
	}
	if _, ok := err.(*HandLimitError); !ok {
		t.Errorf("err = %T, want *HandLimitError", err)
	}
	if h.Size() != 2 {
		t.Errorf("failed AddAll mutated hand: size = %d, want 2", h.Size())
	}
}

func TestHandRemove(t *testing.T) {
	h := NewHand(20)
	if err := h.AddAll([]Card{c(ColorBlue, 4), c(ColorBlue, 4), c(ColorRed, 1)}); err != nil {
		t.Fatal(err)
	}
	if !h.Remove(c(ColorBlue, 4)) {
		t.Fatal("Remove of held card failed")
	}
	// One copy remains.
	if !h.ContainsAll([]Card{c(ColorBlue, 4)}) {
		t.Error("second copy missing after single Remove")
	}
	if h.Remove(c(ColorGreen, 9)) {
		t.Error("Remove of absent card succeeded")
	}
}

func TestHandRemoveAllCountsDuplicates(t *testing.T) {
	h := NewHand(20)
	if err := h.AddAll([]Card{c(ColorBlue, 4), c(ColorRed, 1)}); err != nil {
		t.Fatal(err)
	}
	// Hand holds one Blue4; removing two must fail and leave the hand intact.
	if h.RemoveAll([]Card{c(ColorBlue, 4), c(ColorBlue, 4)}) {
		t.Fatal("RemoveAll removed more copies than held")
	}
	if h.Size() != 2 {
		t.Errorf("failed RemoveAll mutated hand: size = %d, want 2", h.Size())
	}
	if !h.RemoveAll([]Card{c(ColorBlue, 4), c(ColorRed, 1)}) {
		t.Fatal("RemoveAll of held cards failed")
	}
	if !h.IsEmpty() {
		t.Errorf("hand not empty after RemoveAll: %v", h.Cards())
	}
}

func TestHandShufflePreservesContents(t *testing.T) {
	h := NewHand(20)
	cards := []Card{c(ColorBlue, 1), c(ColorGreen, 2), c(ColorRed, 3), c(ColorYellow, 4)}
	if err := h.AddAll(cards); err != nil {
		t.Fatal(err)
	}
	h.Shuffle(testRNG())
	if !h.ContainsAll(cards) || h.Size() != len(cards) {
		t.Errorf("shuffle changed hand contents: %v", h.Cards())
	}
}
