package keymutex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutex_SerializesSameKey(t *testing.T) {
	km := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("42:2026-09-15")
			counter++
			km.Unlock("42:2026-09-15")
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyMutex_DifferentKeysIndependent(t *testing.T) {
	km := New()

	km.Lock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	// Блокировка "a" не должна мешать "b"
	<-done
	km.Unlock("a")
}

func TestKeyMutex_CleansUpEntries(t *testing.T) {
	km := New()

	km.Lock("key")
	km.Unlock("key")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
