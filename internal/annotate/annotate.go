// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate sends text units to a Generative AI backend and
// records the responses, applying the batch rate-limit policy: one
// bounded retry after a cooldown on rate-limit errors, and a proactive
// cooldown after every Nth successful call.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrRateLimited marks a backend error as rate-limit class. Backends
// wrap it so the runner can distinguish "cool down and retry once"
// from ordinary failures.
var ErrRateLimited = errors.New("rate limited")

// Status is a unit's position in the annotation state machine.
type Status int

const (
	// StatusPending: not yet attempted.
	StatusPending Status = iota

	// StatusRetrying: first attempt hit a rate limit; a single retry
	// follows after the cooldown.
	StatusRetrying

	// StatusDone: Analysis holds the model response.
	StatusDone

	// StatusFailed: Analysis holds an error message. The batch
	// continues past failed units.
	StatusFailed
)

// String returns the status name for progress output.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRetrying:
		return "retrying"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Unit is one item of work: a piece of extracted text (and optional
// page render) awaiting annotation. Units are independent; the runner
// visits them in order and mutates each exactly once.
type Unit struct {
	// ID identifies the unit: a chunk sequence number, a player name,
	// or a page number.
	ID string

	// Text is the unit's source text.
	Text string

	// Image is an optional PNG render sent alongside the text.
	Image []byte

	// Analysis receives the model response, or an error message when
	// the annotation call failed.
	Analysis string

	// Status tracks the unit through pending/retrying/done/failed.
	Status Status
}

// Request is one annotation call: a fully composed prompt plus an
// optional image.
type Request struct {
	Prompt string
	Image  []byte
}

// Backend performs a single annotation call. Implementations wrap
// rate-limit errors with ErrRateLimited.
type Backend interface {
	Annotate(ctx context.Context, req Request) (string, error)
}

// Runner applies the annotation policy to a batch of units.
type Runner struct {
	Backend Backend

	// Cooldown is the pause after a rate-limit error and after every
	// PauseEvery successful calls. Defaults to 65s.
	Cooldown time.Duration

	// PauseEvery is the number of successful calls between proactive
	// pauses. Defaults to 14; zero after defaulting disables pausing.
	PauseEvery int

	// Sleep performs the cooldown wait. Defaults to time.Sleep; tests
	// inject a recorder so the policy runs without real delays.
	Sleep func(time.Duration)

	// BuildPrompt composes the model prompt for one unit. When nil the
	// instruction and unit text are joined by a blank line.
	BuildPrompt func(instruction string, u *Unit) string

	// Log receives progress lines. Defaults to io.Discard.
	Log io.Writer
}

// DefaultCooldown is the pause used when Runner.Cooldown is unset,
// sized to clear a per-minute request quota.
const DefaultCooldown = 65 * time.Second

// DefaultPauseEvery is the proactive-pause interval used when
// Runner.PauseEvery is unset.
const DefaultPauseEvery = 14

// Run annotates every unit in order. Per-unit failures are recorded in
// the unit and never abort the batch; the only error Run returns is
// context cancellation between units.
func (r *Runner) Run(ctx context.Context, instruction string, units []*Unit) error {
	sleep := r.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	cooldown := r.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	pauseEvery := r.PauseEvery
	if pauseEvery == 0 {
		pauseEvery = DefaultPauseEvery
	}
	log := r.Log
	if log == nil {
		log = io.Discard
	}

	successes := 0
	for i, u := range units {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(log, "annotating %s (%d/%d)\n", u.ID, i+1, len(units))

		req := Request{Prompt: r.prompt(instruction, u), Image: u.Image}
		resp, err := r.Backend.Annotate(ctx, req)

		switch {
		case err == nil:
			u.Analysis = resp
			u.Status = StatusDone
			successes++

		case errors.Is(err, ErrRateLimited):
			fmt.Fprintf(log, "rate limit hit on %s, cooling down %v\n", u.ID, cooldown)
			u.Status = StatusRetrying
			sleep(cooldown)

			resp, err = r.Backend.Annotate(ctx, req)
			if err != nil {
				fmt.Fprintf(log, "retry failed for %s: %v\n", u.ID, err)
				u.Analysis = fmt.Sprintf("Error after retry: %v", err)
				u.Status = StatusFailed
				continue
			}
			u.Analysis = resp
			u.Status = StatusDone
			successes++

		default:
			fmt.Fprintf(log, "error annotating %s: %v\n", u.ID, err)
			u.Analysis = fmt.Sprintf("Error during analysis: %v", err)
			u.Status = StatusFailed
			continue
		}

		// Open-loop throttling: never after the final unit.
		if pauseEvery > 0 && successes%pauseEvery == 0 && i < len(units)-1 {
			fmt.Fprintf(log, "processed %d calls, cooling down %v\n", successes, cooldown)
			sleep(cooldown)
		}
	}

	return nil
}

func (r *Runner) prompt(instruction string, u *Unit) string {
	if r.BuildPrompt != nil {
		return r.BuildPrompt(instruction, u)
	}
	if instruction == "" {
		return u.Text
	}
	return instruction + "\n\n" + u.Text
}
