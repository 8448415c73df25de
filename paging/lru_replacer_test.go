package paging

import (
	"bytes"
	"testing"

	lru "github.com/hashicorp/golang-lru"
)

// TestLRUVictim tests victim selection by smallest recency
func TestLRUVictim(t *testing.T) {
	r := NewLRUReplacer()
	ft := fullTable(t, 3)

	if victim := r.Victim(ft); victim != 0 {
		t.Errorf("Expected victim 0 (oldest), got %d", victim)
	}

	// Touch frame 0, making frame 1 the oldest
	ft.Touch(0, false, 10)
	if victim := r.Victim(ft); victim != 1 {
		t.Errorf("Expected victim 1, got %d", victim)
	}
}

// TestLRUTieBreak tests that equal recency goes to the lowest index
func TestLRUTieBreak(t *testing.T) {
	r := NewLRUReplacer()
	ft, _ := NewFrameTable(4)
	ft.Load(0, 10, false, 5)
	ft.Load(1, 11, false, 3)
	ft.Load(2, 12, false, 7)
	ft.Load(3, 13, false, 3)

	if victim := r.Victim(ft); victim != 1 {
		t.Errorf("Expected lowest-index tie victim 1, got %d", victim)
	}

	ft.Touch(1, false, 8)
	if victim := r.Victim(ft); victim != 3 {
		t.Errorf("Expected victim 3, got %d", victim)
	}
}

// TestLRUDoesNotMutate tests that selecting a victim leaves frames alone
func TestLRUDoesNotMutate(t *testing.T) {
	r := NewLRUReplacer()
	ft := fullTable(t, 2)

	r.Victim(ft)
	r.Victim(ft)
	if f := ft.Frame(0); f.Recency() != 1 || !f.IsOccupied() {
		t.Errorf("Frame 0 changed: %+v", f)
	}
}

// TestLRUMatchesReferenceCache replays a workload through the engine and
// through hashicorp/golang-lru, and expects the same pages to be evicted
// in the same order.
func TestLRUMatchesReferenceCache(t *testing.T) {
	const frames = 32

	wc := DefaultWorkloadConfig()
	wc.Accesses = 20000
	wc.AddressSpace = 512 * 1024 // 128 pages of 4KB
	wc.Seed = 11

	var buf bytes.Buffer
	if err := WriteWorkload(&buf, wc); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()

	var got []uint32
	e := newTestEngine(t, AlgorithmLRU, 4, frames, WithObserver(ObserverFunc(func(ev AccessEvent) {
		if ev.Outcome == OutcomeMissEvict {
			got = append(got, ev.VictimPage)
		}
	})))
	if _, err := e.Run(NewTraceReader(bytes.NewReader(data))); err != nil {
		t.Fatal(err)
	}

	var want []uint32
	cache, err := lru.NewWithEvict(frames, func(key, _ interface{}) {
		want = append(want, key.(uint32))
	})
	if err != nil {
		t.Fatal(err)
	}
	tr := NewAddressTranslator(4 * 1024)
	reader := NewTraceReader(bytes.NewReader(data))
	for {
		rec, err := reader.Next()
		if err != nil {
			break
		}
		cache.Add(tr.Translate(rec.Address), struct{}{})
	}

	if len(got) == 0 {
		t.Fatal("Workload should cause evictions")
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d evictions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Eviction %d: expected page %d, got %d", i, want[i], got[i])
		}
	}
}
