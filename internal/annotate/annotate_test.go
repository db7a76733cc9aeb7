// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"
)

// scriptedBackend returns canned responses or errors, one per call.
type scriptedBackend struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptedBackend) Annotate(_ context.Context, req Request) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "ok", nil
}

// sleepRecorder counts cooldown pauses instead of sleeping.
type sleepRecorder struct {
	pauses []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.pauses = append(s.pauses, d)
}

func newTestRunner(b Backend, rec *sleepRecorder) *Runner {
	return &Runner{
		Backend:  b,
		Cooldown: 65 * time.Second,
		Sleep:    rec.sleep,
		Log:      io.Discard,
	}
}

func makeUnits(n int) []*Unit {
	units := make([]*Unit, n)
	for i := range units {
		units[i] = &Unit{ID: strconv.Itoa(i + 1), Text: fmt.Sprintf("unit %d", i+1)}
	}
	return units
}

func TestRunSuccess(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"first", "second"}}
	rec := &sleepRecorder{}
	units := makeUnits(2)

	if err := newTestRunner(backend, rec).Run(context.Background(), "summarize", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if units[0].Analysis != "first" || units[1].Analysis != "second" {
		t.Errorf("analyses = %q, %q", units[0].Analysis, units[1].Analysis)
	}
	for i, u := range units {
		if u.Status != StatusDone {
			t.Errorf("unit %d status = %v, want done", i, u.Status)
		}
	}
	if len(rec.pauses) != 0 {
		t.Errorf("recorded %d pauses, want 0", len(rec.pauses))
	}
	if !strings.HasPrefix(backend.prompts[0], "summarize\n\n") {
		t.Errorf("prompt missing instruction: %q", backend.prompts[0])
	}
}

func TestRunRateLimitRetrySucceeds(t *testing.T) {
	backend := &scriptedBackend{
		errs:      []error{fmt.Errorf("quota: %w", ErrRateLimited), nil},
		responses: []string{"", "recovered"},
	}
	rec := &sleepRecorder{}
	units := makeUnits(1)

	if err := newTestRunner(backend, rec).Run(context.Background(), "go", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if units[0].Analysis != "recovered" {
		t.Errorf("analysis = %q, want %q", units[0].Analysis, "recovered")
	}
	if units[0].Status != StatusDone {
		t.Errorf("status = %v, want done", units[0].Status)
	}
	// Exactly one cooldown pause, of the configured length.
	if len(rec.pauses) != 1 || rec.pauses[0] != 65*time.Second {
		t.Errorf("pauses = %v, want one 65s pause", rec.pauses)
	}
	if backend.calls != 2 {
		t.Errorf("backend called %d times, want 2", backend.calls)
	}
}

func TestRunRateLimitRetryFails(t *testing.T) {
	backend := &scriptedBackend{
		errs: []error{
			fmt.Errorf("quota: %w", ErrRateLimited),
			fmt.Errorf("still throttled"),
		},
	}
	rec := &sleepRecorder{}
	units := makeUnits(2)

	if err := newTestRunner(backend, rec).Run(context.Background(), "go", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasPrefix(units[0].Analysis, "Error after retry:") {
		t.Errorf("analysis = %q, want retry-error message", units[0].Analysis)
	}
	if units[0].Status != StatusFailed {
		t.Errorf("status = %v, want failed", units[0].Status)
	}
	// The batch continues past the failed unit.
	if units[1].Status != StatusDone {
		t.Errorf("second unit status = %v, want done", units[1].Status)
	}
	if len(rec.pauses) != 1 {
		t.Errorf("recorded %d pauses, want 1", len(rec.pauses))
	}
}

func TestRunOtherErrorNoRetry(t *testing.T) {
	backend := &scriptedBackend{
		errs: []error{fmt.Errorf("boom"), nil},
	}
	rec := &sleepRecorder{}
	units := makeUnits(2)

	if err := newTestRunner(backend, rec).Run(context.Background(), "go", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasPrefix(units[0].Analysis, "Error during analysis:") {
		t.Errorf("analysis = %q, want analysis-error message", units[0].Analysis)
	}
	if units[0].Status != StatusFailed {
		t.Errorf("status = %v, want failed", units[0].Status)
	}
	if units[1].Status != StatusDone {
		t.Errorf("second unit status = %v, want done", units[1].Status)
	}
	// No cooldown and no second attempt for the failed unit.
	if len(rec.pauses) != 0 {
		t.Errorf("recorded %d pauses, want 0", len(rec.pauses))
	}
	if backend.calls != 2 {
		t.Errorf("backend called %d times, want 2", backend.calls)
	}
}

func TestRunProactivePause(t *testing.T) {
	backend := &scriptedBackend{}
	rec := &sleepRecorder{}
	runner := newTestRunner(backend, rec)
	runner.PauseEvery = 2
	units := makeUnits(5)

	if err := runner.Run(context.Background(), "go", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Pauses after calls 2 and 4; never after the final unit.
	if len(rec.pauses) != 2 {
		t.Errorf("recorded %d pauses, want 2: %v", len(rec.pauses), rec.pauses)
	}
}

func TestRunNoPauseAfterFinalUnit(t *testing.T) {
	backend := &scriptedBackend{}
	rec := &sleepRecorder{}
	runner := newTestRunner(backend, rec)
	runner.PauseEvery = 2
	units := makeUnits(2)

	if err := runner.Run(context.Background(), "go", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.pauses) != 0 {
		t.Errorf("recorded %d pauses, want 0: %v", len(rec.pauses), rec.pauses)
	}
}

func TestRunCustomPrompt(t *testing.T) {
	backend := &scriptedBackend{}
	rec := &sleepRecorder{}
	runner := newTestRunner(backend, rec)
	runner.BuildPrompt = func(instruction string, u *Unit) string {
		return instruction + " | " + u.ID
	}
	units := makeUnits(1)

	if err := runner.Run(context.Background(), "inst", units); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if backend.prompts[0] != "inst | 1" {
		t.Errorf("prompt = %q, want %q", backend.prompts[0], "inst | 1")
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &scriptedBackend{}
	rec := &sleepRecorder{}
	units := makeUnits(3)

	err := newTestRunner(backend, rec).Run(ctx, "go", units)
	if err == nil {
		t.Fatal("Run() expected context error")
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times after cancellation, want 0", backend.calls)
	}
}
