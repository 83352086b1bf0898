package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/tiledworld/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestReusedIDGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), 7); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.ID() != old.ID() {
		t.Fatalf("expected id %d to be reused, got %d", old.ID(), fresh.ID())
	}
	if fresh == old {
		t.Fatalf("reused entity should carry a new generation")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("reused entity must not inherit components")
	}
	if err := Add(w, old, h.Kind(), 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestWorldComponentsAndQueries(t *testing.T) {
	w := NewWorld()

	hi := component.NewComponent[int]("int")
	hs := component.NewComponent[string]("string")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	tests := []struct {
		name  string
		setup func() error
		check func(t *testing.T)
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hi.Kind(), 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hi.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "add_string_to_e3_and_e1",
			setup: func() error {
				if err := Add(w, e3, hs.Kind(), "c"); err != nil {
					return err
				}
				return Add(w, e1, hs.Kind(), "a")
			},
			check: func(t *testing.T) {
				got := w.Query(hs.Kind())
				if len(got) != 2 || got[0] != e1 || got[1] != e3 {
					t.Fatalf("expected [%s %s] in id order, got %v", e1, e3, got)
				}
			},
		},
		{
			name:  "query_intersection",
			setup: func() error { return Add(w, e2, hi.Kind(), 2) },
			check: func(t *testing.T) {
				got := w.Query(hi.Kind(), hs.Kind())
				if len(got) != 1 || got[0] != e1 {
					t.Fatalf("expected only %s, got %v", e1, got)
				}
			},
		},
		{
			name:  "replace_keeps_single_value",
			setup: func() error { return Add(w, e1, hi.Kind(), 11) },
			check: func(t *testing.T) {
				v, _ := Get(w, e1, hi.Kind())
				if *v != 11 || w.Count(hi.Kind()) != 2 {
					t.Fatalf("expected replaced value 11 and 2 ints, got %d and %d", *v, w.Count(hi.Kind()))
				}
			},
		},
		{
			name: "remove",
			setup: func() error {
				if !Remove(w, e1, hi.Kind()) {
					return errors.New("remove reported absent component")
				}
				return nil
			},
			check: func(t *testing.T) {
				if Has(w, e1, hi.Kind()) {
					t.Fatalf("expected int removed from e1")
				}
				if first, ok := First(w, hi.Kind()); !ok || first != e2 {
					t.Fatalf("expected First to be %s, got %s ok=%v", e2, first, ok)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestForEachEditsInPlace(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	for i, e := range []Entity{e3, e1} {
		if err := Add(w, e, h.Kind(), i+1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var visited []Entity
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited = append(visited, e)
		*v *= 10
	})

	if len(visited) != 2 || visited[0] != e1 || visited[1] != e3 {
		t.Fatalf("expected visit order [%s %s], got %v", e1, e3, visited)
	}
	if v, _ := Get(w, e3, h.Kind()); *v != 10 {
		t.Fatalf("expected in-place edit to stick, got %d", *v)
	}
	if Has(w, e2, h.Kind()) {
		t.Fatalf("did not expect e2 to carry the component")
	}
}

func TestChangeEvents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	before := CreateEntity(w)
	if err := Add(w, before, h.Kind(), 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r1 := RegisterReader(w, h.Kind())
	r2 := RegisterReader(w, h.Kind())
	if got := ReadEvents(w, h.Kind(), r1); len(got) != 0 {
		t.Fatalf("reader should not see changes made before registration, got %v", got)
	}

	e := CreateEntity(w)
	_ = Add(w, e, h.Kind(), 1)
	_ = Add(w, e, h.Kind(), 2)
	MarkModified(w, before, h.Kind())
	DestroyEntity(w, e)

	want := []ComponentEvent{
		{Kind: ChangeInserted, Entity: e},
		{Kind: ChangeModified, Entity: e},
		{Kind: ChangeModified, Entity: before},
		{Kind: ChangeRemoved, Entity: e},
	}
	got := ReadEvents(w, h.Kind(), r1)
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if again := ReadEvents(w, h.Kind(), r1); len(again) != 0 {
		t.Fatalf("events must be delivered once per reader, got %v", again)
	}
	if other := ReadEvents(w, h.Kind(), r2); len(other) != len(want) {
		t.Fatalf("second reader should see all %d events, got %d", len(want), len(other))
	}
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(*World) { *s.calls = append(*s.calls, s.name) }

func TestSchedulerOrder(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	s.Add(countingSystem{&calls, "c"})

	w := NewWorld()
	s.Update(w)
	s.Update(w)

	if len(calls) != 6 || calls[0] != "a" || calls[2] != "c" || calls[3] != "a" {
		t.Fatalf("unexpected call order %v", calls)
	}
	if s.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got %d", s.Ticks())
	}
}
