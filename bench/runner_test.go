package bench

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunConcurrentCounts(t *testing.T) {
	for _, n := range []int{0, 1, 4} {
		results, err := RunConcurrent(n, func() (float64, error) { return 1, nil })
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != n {
			t.Fatalf("n = %d: got %d results", n, len(results))
		}
	}
}

func TestRunConcurrentZeroIsEmpty(t *testing.T) {
	results, err := RunConcurrent(0, func() (float64, error) {
		t.Error("task ran for n = 0")
		return 0, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatal("expected an empty sequence")
	}
}

// Staggered task durations make completion order deterministic enough to
// assert: the fastest task must be collected first regardless of launch
// order.
func TestRunConcurrentCompletionOrder(t *testing.T) {
	durations := []time.Duration{
		300 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
	}
	var next int32
	results, err := RunConcurrent(len(durations), func() (float64, error) {
		d := durations[atomic.AddInt32(&next, 1)-1]
		time.Sleep(d)
		return d.Seconds(), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(durations) {
		t.Fatal("missing results")
	}
	for i := 1; i < len(results); i++ {
		if results[i] < results[i-1] {
			t.Fatal("results not in completion order:", results)
		}
	}
}

// For real workloads only the multiset of values is guaranteed, never
// positions.
func TestRunConcurrentMultiset(t *testing.T) {
	var next int32
	results, err := RunConcurrent(4, func() (float64, error) {
		return float64(atomic.AddInt32(&next, 1)), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, r := range results {
		sum += r
	}
	if math.Abs(sum-10) > 1e-9 {
		t.Fatal("unexpected result multiset:", results)
	}
}

func TestRunConcurrentTaskFailureAbortsRun(t *testing.T) {
	taskErr := errors.New("task failed")
	var next int32
	results, err := RunConcurrent(4, func() (float64, error) {
		if atomic.AddInt32(&next, 1) == 2 {
			return 0, taskErr
		}
		return 1, nil
	})
	if !errors.Is(err, taskErr) {
		t.Fatal("expected the task error, got", err)
	}
	if results != nil {
		t.Fatal("no partial results should be reported")
	}
}
