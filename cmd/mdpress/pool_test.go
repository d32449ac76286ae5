package main

import "testing"

func TestServicePoolSize(t *testing.T) {
	pool := NewServicePool(3)
	defer pool.Close()

	if pool.Size() != 3 {
		t.Errorf("Size() = %d, want 3", pool.Size())
	}
}

func TestServicePoolMinimumSize(t *testing.T) {
	pool := NewServicePool(0)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestServicePoolAcquireRelease(t *testing.T) {
	pool := NewServicePool(1)
	defer pool.Close()

	svc := pool.Acquire()
	if svc == nil {
		t.Fatal("Acquire returned nil")
	}
	pool.Release(svc)

	// The released service comes back on the next acquire.
	again := pool.Acquire()
	if again != svc {
		t.Error("expected the same service instance to be reused")
	}
	pool.Release(again)
}

func TestServicePoolCloseIdempotent(t *testing.T) {
	pool := NewServicePool(1)

	if err := pool.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}

func TestServicePoolReleaseAfterClose(t *testing.T) {
	pool := NewServicePool(1)
	svc := pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	// Must not panic on the closed channel.
	pool.Release(svc)
}

func TestResolvePoolSize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 3, 3},
		{"explicit capped", 20, maxPoolSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("resolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func TestResolvePoolSizeAuto(t *testing.T) {
	got := resolvePoolSize(0)
	if got < 1 || got > maxPoolSize {
		t.Errorf("resolvePoolSize(0) = %d, want between 1 and %d", got, maxPoolSize)
	}
}
