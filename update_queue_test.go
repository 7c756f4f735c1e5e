package main

import (
	"runtime"
	"sync"
	"testing"
)

func TestUpdateQueue_CapacityRoundsUp(t *testing.T) {
	if got := newUpdateQueue(5).Cap(); got != 8 {
		t.Fatalf("expected capacity 8, got %d", got)
	}
	if got := newUpdateQueue(0).Cap(); got != 2 {
		t.Fatalf("expected minimum capacity 2, got %d", got)
	}
	if got := newUpdateQueue(256).Cap(); got != 256 {
		t.Fatalf("expected capacity 256, got %d", got)
	}
}

func TestUpdateQueue_FIFO(t *testing.T) {
	q := newUpdateQueue(4)
	for i := range 3 {
		if !q.Push(FrequencyDelta(float64(i))) {
			t.Fatalf("push %d rejected", i)
		}
	}
	if q.Len() != 3 {
		t.Fatalf("expected len 3, got %d", q.Len())
	}
	for i := range 3 {
		u, ok := q.Pop()
		if !ok || u.Value != float64(i) {
			t.Fatalf("pop %d: got %v, %v", i, u, ok)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestUpdateQueue_FullRejects(t *testing.T) {
	q := newUpdateQueue(2)
	if !q.Push(SetVolume(0.1)) || !q.Push(SetVolume(0.2)) {
		t.Fatal("expected two pushes to fit")
	}
	if q.Push(SetVolume(0.3)) {
		t.Fatal("expected push into full queue to fail")
	}
	u, _ := q.Pop()
	if u.Value != 0.1 {
		t.Fatalf("expected oldest update first, got %v", u)
	}
	if !q.Push(SetVolume(0.4)) {
		t.Fatal("expected push after pop to succeed")
	}
}

// TestUpdateQueue_ConcurrentSPSC checks ordering across one producer and one
// consumer goroutine. Run with -race for the memory ordering check.
func TestUpdateQueue_ConcurrentSPSC(t *testing.T) {
	const total = 20000
	q := newUpdateQueue(16)

	var wg sync.WaitGroup
	wg.Go(func() {
		for i := 1; i <= total; {
			if q.Push(FrequencyDelta(float64(i))) {
				i++
				continue
			}
			runtime.Gosched()
		}
	})

	var bad float64
	wg.Go(func() {
		next := 1.0
		for next <= total {
			u, ok := q.Pop()
			if !ok {
				runtime.Gosched()
				continue
			}
			if u.Value != next && bad == 0 {
				bad = u.Value
			}
			next++
		}
	})
	wg.Wait()

	if bad != 0 {
		t.Fatalf("out of order update %v", bad)
	}
	if q.Len() != 0 {
		t.Fatalf("expected drained queue, got %d", q.Len())
	}
}
