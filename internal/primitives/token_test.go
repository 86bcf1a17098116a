package primitives

import (
	"sync"
	"testing"
)

func TestTokenLifecycle(t *testing.T) {
	tok := NewToken()
	if !tok.IsOpen() {
		t.Fatal("new token should be open")
	}
	if !tok.Seal() {
		t.Error("first Seal should report the transition")
	}
	if tok.IsOpen() {
		t.Error("sealed token should not be open")
	}
	if tok.Seal() {
		t.Error("second Seal should be a no-op")
	}
}

func TestTokenZeroValueIsSealed(t *testing.T) {
	var tok Token
	if tok.IsOpen() {
		t.Error("zero Token should be sealed")
	}
}

func TestTokenConcurrentSealSingleWinner(t *testing.T) {
	tok := NewToken()
	const nWorkers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < nWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if tok.Seal() {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if winners != 1 {
		t.Errorf("expected exactly one sealing goroutine, got %d", winners)
	}
}
