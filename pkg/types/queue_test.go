package types

import (
	"sync"
	"testing"
	"time"
)

func TestControlledQueue_FIFO(t *testing.T) {
	cq := NewControlledQueue[int]()
	for i := range 5 {
		if !cq.Send(i) {
			t.Fatalf("Send(%d) = false, want true", i)
		}
	}
	for want := range 5 {
		got, ok := cq.Recv()
		if !ok || got != want {
			t.Errorf("Recv() = %d, %v, want %d, true", got, ok, want)
		}
	}
}

func TestControlledQueue_AttemptRecvEmpty(t *testing.T) {
	cq := NewControlledQueue[string]()
	canRecv, v, ok := cq.AttemptRecv(false)
	if canRecv || v != "" || !ok {
		t.Errorf("AttemptRecv(false) = %v, %q, %v, want false, \"\", true", canRecv, v, ok)
	}
}

func TestControlledQueue_RecvBlocksUntilSend(t *testing.T) {
	cq := NewControlledQueue[int]()
	got := make(chan int, 1)
	go func() {
		v, _ := cq.Recv()
		got <- v
	}()

	select {
	case <-got:
		t.Fatal("Recv returned before Send")
	case <-time.After(20 * time.Millisecond):
	}

	cq.Send(42)
	select {
	case v := <-got:
		if v != 42 {
			t.Errorf("Recv() = %d, want 42", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv did not wake up after Send")
	}
}

func TestControlledQueue_CloseUnblocks(t *testing.T) {
	cq := NewControlledQueue[int]()
	done := make(chan bool, 1)
	go func() {
		_, ok := cq.Recv()
		done <- ok
	}()
	time.Sleep(10 * time.Millisecond)
	cq.Close()
	cq.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Recv() ok = true after Close, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not unblock Recv")
	}
	if cq.Send(1) {
		t.Error("Send() after Close = true, want false")
	}
}

func TestControlledQueue_Drain(t *testing.T) {
	cq := NewControlledQueue[int]()
	cq.Send(1)
	cq.Send(2)
	vs, ok := cq.Drain()
	if !ok || len(vs) != 2 || vs[0] != 1 || vs[1] != 2 {
		t.Errorf("Drain() = %v, %v, want [1 2], true", vs, ok)
	}
	if cq.Len() != 0 {
		t.Errorf("Len() = %d after Drain, want 0", cq.Len())
	}
}

func TestControlledQueue_ConcurrentSenders(t *testing.T) {
	cq := NewControlledQueue[int]()
	const senders, each = 8, 100

	var wg sync.WaitGroup
	wg.Add(senders)
	for range senders {
		go func() {
			defer wg.Done()
			for i := range each {
				cq.Send(i)
			}
		}()
	}
	wg.Wait()

	if cq.Len() != senders*each {
		t.Errorf("Len() = %d, want %d", cq.Len(), senders*each)
	}
}

func TestRecti_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Recti
		want Recti
	}{
		{"inside", Recti{0, 0, 10, 10}, Recti{2, 3, 4, 5}, Recti{2, 3, 4, 5}},
		{"partial", Recti{0, 0, 10, 10}, Recti{5, 5, 10, 10}, Recti{5, 5, 5, 5}},
		{"disjoint", Recti{0, 0, 10, 10}, Recti{20, 20, 1, 1}, Recti{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("Intersect() = %v, want %v", got, tt.want)
			}
		})
	}
}
