package safe

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	if got := Add(2, 3); got != 5 {
		t.Errorf("Add(2, 3) = %d; want 5", got)
	}
	if got := Add(-2, -3); got != -5 {
		t.Errorf("Add(-2, -3) = %d; want -5", got)
	}

	t.Run("Overflow panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on overflow")
			}
		}()
		Add(math.MaxInt64, 1)
	})
}

func TestSub(t *testing.T) {
	if got := Sub(5, 3); got != 2 {
		t.Errorf("Sub(5, 3) = %d; want 2", got)
	}

	t.Run("Underflow panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on underflow")
			}
		}()
		Sub(math.MinInt64, 1)
	})
}
