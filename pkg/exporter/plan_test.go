package exporter

import (
	"errors"
	"testing"
)

func TestPlan_EvenSplit(t *testing.T) {
	batches := Plan(120, 30)
	if len(batches) != 4 {
		t.Fatalf("expected 4 batches, got %d", len(batches))
	}
	for i, b := range batches {
		if b.Index != i {
			t.Errorf("batch %d has index %d", i, b.Index)
		}
		if b.StartFrame != i*30 || b.EndFrame != (i+1)*30 {
			t.Errorf("batch %d covers [%d,%d), want [%d,%d)", i, b.StartFrame, b.EndFrame, i*30, (i+1)*30)
		}
	}
}

func TestPlan_Remainder(t *testing.T) {
	batches := Plan(100, 30)
	if len(batches) != 4 {
		t.Fatalf("expected 4 batches, got %d", len(batches))
	}
	last := batches[3]
	if last.StartFrame != 90 || last.EndFrame != 100 {
		t.Errorf("last batch covers [%d,%d), want [90,100)", last.StartFrame, last.EndFrame)
	}
	if last.FrameCount() != 10 {
		t.Errorf("last batch FrameCount = %d, want 10", last.FrameCount())
	}
}

func TestPlan_SingleShortBatch(t *testing.T) {
	batches := Plan(5, 30)
	if len(batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(batches))
	}
	if batches[0].StartFrame != 0 || batches[0].EndFrame != 5 {
		t.Errorf("batch covers [%d,%d), want [0,5)", batches[0].StartFrame, batches[0].EndFrame)
	}
}

func TestPlan_Degenerate(t *testing.T) {
	if got := Plan(0, 30); got != nil {
		t.Errorf("Plan(0, 30) = %v, want nil", got)
	}
	if got := Plan(-1, 30); got != nil {
		t.Errorf("Plan(-1, 30) = %v, want nil", got)
	}
	// Batch size below 1 falls back to a single batch.
	batches := Plan(10, 0)
	if len(batches) != 1 || batches[0].EndFrame != 10 {
		t.Errorf("Plan(10, 0) = %v, want one batch of 10", batches)
	}
}

func TestCheckContinuity(t *testing.T) {
	if err := CheckContinuity(Plan(100, 30)); err != nil {
		t.Errorf("planned batches reported discontinuous: %v", err)
	}
	if err := CheckContinuity(nil); err != nil {
		t.Errorf("empty plan reported discontinuous: %v", err)
	}

	gap := []Batch{
		{Index: 0, StartFrame: 0, EndFrame: 30},
		{Index: 1, StartFrame: 40, EndFrame: 70},
	}
	if err := CheckContinuity(gap); !errors.Is(err, ErrDiscontinuity) {
		t.Errorf("gap not detected: %v", err)
	}

	empty := []Batch{{Index: 0, StartFrame: 10, EndFrame: 10}}
	if err := CheckContinuity(empty); !errors.Is(err, ErrDiscontinuity) {
		t.Errorf("empty batch not detected: %v", err)
	}
}

func TestParseContinuityPolicy(t *testing.T) {
	if got := ParseContinuityPolicy("abort"); got != PolicyAbort {
		t.Errorf("ParseContinuityPolicy(abort) = %q", got)
	}
	if got := ParseContinuityPolicy("warn"); got != PolicyWarn {
		t.Errorf("ParseContinuityPolicy(warn) = %q", got)
	}
	if got := ParseContinuityPolicy("bogus"); got != PolicyWarn {
		t.Errorf("ParseContinuityPolicy(bogus) = %q", got)
	}
}

func TestBatchPercent(t *testing.T) {
	if got := batchPercent(0, 0, 4); got != 10 {
		t.Errorf("first batch start = %d, want 10", got)
	}
	if got := batchPercent(3, 1, 4); got != 70 {
		t.Errorf("last batch end = %d, want 70", got)
	}
	if got := batchPercent(1, 0.5, 4); got != 32 {
		t.Errorf("mid batch = %d, want 32", got)
	}
	// Out-of-range ratios clamp.
	if got := batchPercent(0, 2.0, 1); got != 70 {
		t.Errorf("clamped high = %d, want 70", got)
	}
	if got := batchPercent(0, -1, 4); got != 10 {
		t.Errorf("clamped low = %d, want 10", got)
	}
}

func TestComposePercent(t *testing.T) {
	if got := composePercent(0); got != 70 {
		t.Errorf("compose start = %d, want 70", got)
	}
	if got := composePercent(1); got != 90 {
		t.Errorf("compose end = %d, want 90", got)
	}
	if got := composePercent(5); got != 90 {
		t.Errorf("compose clamped = %d, want 90", got)
	}
}
