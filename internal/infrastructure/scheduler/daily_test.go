package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewDailyScheduler(time.Hour)
	ran := make(chan struct{})
	err := s.Start(context.Background(), func(time.Time) { close(ran) })
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop(context.Background())

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run at startup")
	}
}

func TestStopHaltsTicks(t *testing.T) {
	t.Parallel()

	s := NewDailyScheduler(20 * time.Millisecond)
	var runs atomic.Int64
	if err := s.Start(context.Background(), func(time.Time) { runs.Add(1) }); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Let a few ticks land, then stop and confirm the count settles.
	time.Sleep(70 * time.Millisecond)
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// A tick already dispatched when Stop returns may still finish; give it
	// a moment before snapshotting.
	time.Sleep(30 * time.Millisecond)
	settled := runs.Load()
	if settled == 0 {
		t.Fatal("job never ran before stop")
	}
	time.Sleep(100 * time.Millisecond)
	if got := runs.Load(); got != settled {
		t.Fatalf("job kept running after stop: %d ticks became %d", settled, got)
	}
}

func TestStopIsIdempotentAndRestartable(t *testing.T) {
	t.Parallel()

	s := NewDailyScheduler(time.Hour)
	ctx := context.Background()

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop before start: %v", err)
	}

	ran := make(chan struct{}, 2)
	if err := s.Start(ctx, func(time.Time) { ran <- struct{}{} }); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("second stop: %v", err)
	}

	if err := s.Start(ctx, func(time.Time) { ran <- struct{}{} }); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer s.Stop(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("run %d did not happen", i+1)
		}
	}
}
