package worker_test

import (
	"sort"
	"strconv"
	"testing"

	"github.com/remaimber-it/flashcards/internal/worker"
)

func TestPool_RunsEveryJob(t *testing.T) {
	pool := worker.NewPool[int](3, 10)
	for i := 0; i < 10; i++ {
		n := i
		pool.Submit(strconv.Itoa(i), func() int { return n * n })
	}
	pool.Close()

	got := make(map[string]int)
	for r := range pool.Results() {
		got[r.JobID] = r.Output
	}

	if len(got) != 10 {
		t.Fatalf("expected 10 results, got %d", len(got))
	}
	for i := 0; i < 10; i++ {
		if got[strconv.Itoa(i)] != i*i {
			t.Errorf("job %d: expected %d, got %d", i, i*i, got[strconv.Itoa(i)])
		}
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	pool := worker.NewPool[string](0, 2)
	pool.Submit("a", func() string { return "A" })
	pool.Submit("b", func() string { return "B" })
	pool.Close()

	var outputs []string
	for r := range pool.Results() {
		outputs = append(outputs, r.Output)
	}
	sort.Strings(outputs)

	if len(outputs) != 2 || outputs[0] != "A" || outputs[1] != "B" {
		t.Errorf("unexpected outputs %v", outputs)
	}
}
