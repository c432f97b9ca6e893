package event

import (
	"testing"
)

func TestEventPool(t *testing.T) {
	ev := Acquire()
	ev.Symbol = "ARL3"
	ev.Action = ActAdd
	ev.Size = 100

	if ev.Symbol != "ARL3" {
		t.Error("Symbol not set")
	}

	Release(ev)

	// Acquire again - should be reset
	ev2 := Acquire()
	if ev2.Symbol != "" || ev2.Action != 0 || ev2.Size != 0 {
		t.Error("Event should be reset after release")
	}
	Release(ev2)
}

// BenchmarkWithoutPool measures allocation without pool
func BenchmarkWithoutPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ev := &Mbo{Symbol: "ARL3", Size: 100}
		_ = ev
	}
}

// BenchmarkWithPool measures allocation with pool
func BenchmarkWithPool(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ev := Acquire()
		ev.Symbol = "ARL3"
		ev.Size = 100
		Release(ev)
	}
}
