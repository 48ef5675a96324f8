package lz4mt

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEmissionGate_FirstTaskNeverWaits(t *testing.T) {
	gate := &emissionGate{}
	wait, done := gate.next()
	require.Nil(t, wait)
	close(done)
}

func TestEmissionGate_OrdersSuccessors(t *testing.T) {
	gate := &emissionGate{}
	var mu sync.Mutex
	var order []int

	n := 5
	waits := make([]chan struct{}, n)
	dones := make([]chan struct{}, n)
	for i := 0; i < n; i++ {
		waits[i], dones[i] = gate.next()
	}

	done := make(chan struct{})
	for i := n - 1; i >= 0; i-- {
		i := i
		go func() {
			awaitPredecessor(waits[i])
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			close(dones[i])
			if i == n-1 {
				close(done)
			}
		}()
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emission gate deadlocked")
	}

	for i, v := range order {
		require.Equal(t, i, v)
	}
}
