package pbexport

import (
	"sync"
	"testing"
)

func newTestExporter() *Exporter {
	return NewExporter(newMockGenerator(), &mockConverter{}, newRecordingSaver())
}

func TestExporterPoolLazyCreation(t *testing.T) {
	var created int
	pool := NewExporterPool(3, func() *Exporter {
		created++
		return newTestExporter()
	})
	defer pool.Close()

	if created != 0 {
		t.Errorf("pool created %d exporters eagerly", created)
	}

	e := pool.Acquire()
	if created != 1 {
		t.Errorf("created = %d after first acquire, want 1", created)
	}
	pool.Release(e)

	// Released exporter is reused, not recreated.
	again := pool.Acquire()
	if created != 1 {
		t.Errorf("created = %d after reacquire, want 1", created)
	}
	pool.Release(again)
}

func TestExporterPoolMinimumSize(t *testing.T) {
	pool := NewExporterPool(0, newTestExporter)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestExporterPoolConcurrentAcquire(t *testing.T) {
	pool := NewExporterPool(2, newTestExporter)
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := pool.Acquire()
			pool.Release(e)
		}()
	}
	wg.Wait()
}

func TestExporterPoolCloseIdempotent(t *testing.T) {
	pool := NewExporterPool(1, newTestExporter)
	e := pool.Acquire()
	pool.Release(e)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestResolvePoolSize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		check   func(int) bool
	}{
		{"explicit wins", 3, func(n int) bool { return n == 3 }},
		{"auto within bounds", 0, func(n int) bool { return n >= MinPoolSize && n <= MaxPoolSize }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePoolSize(tt.workers); !tt.check(got) {
				t.Errorf("ResolvePoolSize(%d) = %d", tt.workers, got)
			}
		})
	}
}
