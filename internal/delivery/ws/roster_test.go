package ws

import "testing"

func TestRoster_AddAndConflict(t *testing.T) {
	r := NewRoster()

	if err := r.Add(newMockClient("r1", "alice")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.Add(newMockClient("r1", "bob")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := r.Add(newMockClient("r1", "alice")); err != ErrNameTaken {
		t.Errorf("Expected ErrNameTaken, got %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Rejected add must not mutate the roster, count %d", r.Count())
	}
}

func TestRoster_NamesInRegistrationOrder(t *testing.T) {
	r := NewRoster()
	for _, name := range []string{"carol", "alice", "bob"} {
		r.Add(newMockClient("r1", name))
	}

	names := r.Names()
	want := []string{"carol", "alice", "bob"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestRoster_RemoveIsIdempotent(t *testing.T) {
	r := NewRoster()
	alice := newMockClient("r1", "alice")
	r.Add(alice)

	if _, remaining, ok := r.Remove(alice.ID); !ok || remaining != 0 {
		t.Errorf("Expected removal with 0 remaining, got ok=%v remaining=%d", ok, remaining)
	}
	if _, _, ok := r.Remove(alice.ID); ok {
		t.Error("Second removal must report not found")
	}
	if _, _, ok := r.Remove("ghost"); ok {
		t.Error("Removing an unknown id must report not found")
	}
}

func TestRoster_NameFreedByRemoval(t *testing.T) {
	r := NewRoster()
	alice := newMockClient("r1", "alice")
	r.Add(alice)
	r.Remove(alice.ID)

	if err := r.Add(newMockClient("r1", "alice")); err != nil {
		t.Errorf("Expected name to be free after removal, got %v", err)
	}
}

func TestRoster_ReadStates(t *testing.T) {
	r := NewRoster()
	alice := newMockClient("r1", "alice")
	bob := newMockClient("r1", "bob")
	r.Add(alice)
	r.Add(bob)

	id := int64(4)
	bob.Participant.LastReadID = &id

	states := r.ReadStates()
	if len(states) != 2 {
		t.Fatalf("Expected 2 states, got %d", len(states))
	}
	if states[alice.ID].LastReadID != nil {
		t.Error("Expected nil watermark for alice")
	}
	if got := states[bob.ID].LastReadID; got == nil || *got != 4 {
		t.Errorf("Expected watermark 4 for bob, got %v", got)
	}
}
