package common

import (
	"sync"
	"testing"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("player-1|def-1")
			counter++
			km.Unlock("player-1|def-1")
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Errorf("counter = %d, want 100 (lost updates under same key)", counter)
	}
}

func TestKeyMutex_IndependentKeys(t *testing.T) {
	km := NewKeyMutex()

	km.Lock("a")
	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// Key "b" must not be blocked by the held lock on "a".
	<-done
	km.Unlock("a")
}
