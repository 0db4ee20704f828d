package parallel

import (
	"errors"
	"sync"
	"testing"
)

func TestErrorCollector(t *testing.T) {
	t.Parallel()

	t.Run("FirstErrorWins", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		first := errors.New("first")
		second := errors.New("second")

		ec.SetError(first)
		ec.SetError(second)

		if got := ec.Err(); !errors.Is(got, first) {
			t.Errorf("Err() = %v, want %v", got, first)
		}
	})

	t.Run("NilIgnored", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		ec.SetError(nil)
		if got := ec.Err(); got != nil {
			t.Errorf("Err() = %v, want nil", got)
		}

		sentinel := errors.New("sentinel")
		ec.SetError(sentinel)
		ec.SetError(nil)
		if got := ec.Err(); !errors.Is(got, sentinel) {
			t.Errorf("Err() = %v, want %v", got, sentinel)
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		sentinel := errors.New("sentinel")

		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ec.SetError(sentinel)
			}()
		}
		wg.Wait()

		if got := ec.Err(); !errors.Is(got, sentinel) {
			t.Errorf("Err() = %v, want %v", got, sentinel)
		}
	})

	t.Run("EmptyCollector", func(t *testing.T) {
		t.Parallel()
		var ec ErrorCollector
		if got := ec.Err(); got != nil {
			t.Errorf("Err() on fresh collector = %v, want nil", got)
		}
	})
}
