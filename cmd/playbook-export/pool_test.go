package main

import (
	"context"
	"sync"
	"testing"

	pbexport "github.com/alnah/go-playbook-export"
)

// fakeConverter is a no-op DocumentConverter for pool tests.
type fakeConverter struct {
	closed bool
}

func (f *fakeConverter) ToPDF(_ context.Context, unit pbexport.ExportUnit) ([]byte, error) {
	return []byte("PDF:" + unit.Path), nil
}

func (f *fakeConverter) Close() error {
	f.closed = true
	return nil
}

func TestConverterPoolLazyCreation(t *testing.T) {
	var created int
	pool := newConverterPool(2, func() pbexport.DocumentConverter {
		created++
		return &fakeConverter{}
	})
	defer pool.Close()

	if created != 0 {
		t.Errorf("pool created %d converters eagerly", created)
	}

	conv := pool.Acquire()
	if created != 1 {
		t.Errorf("created = %d after first acquire, want 1", created)
	}
	pool.Release(conv)

	again := pool.Acquire()
	if created != 1 {
		t.Errorf("created = %d after reacquire, want 1", created)
	}
	pool.Release(again)
}

func TestConverterPoolCloseClosesConverters(t *testing.T) {
	var convs []*fakeConverter
	pool := newConverterPool(2, func() pbexport.DocumentConverter {
		c := &fakeConverter{}
		convs = append(convs, c)
		return c
	})

	a := pool.Acquire()
	b := pool.Acquire()
	pool.Release(a)
	pool.Release(b)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	for i, c := range convs {
		if !c.closed {
			t.Errorf("converter %d not closed", i)
		}
	}

	// Close is idempotent.
	if err := pool.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestConverterPoolConcurrentUse(t *testing.T) {
	pool := newConverterPool(2, func() pbexport.DocumentConverter {
		return &fakeConverter{}
	})
	defer pool.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			_, _ = conv.ToPDF(context.Background(), pbexport.ExportUnit{Path: "x.pdf"})
			pool.Release(conv)
		}()
	}
	wg.Wait()
}

func TestConverterPoolMinimumSize(t *testing.T) {
	pool := newConverterPool(0, func() pbexport.DocumentConverter {
		return &fakeConverter{}
	})
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}
