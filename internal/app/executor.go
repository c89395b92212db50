package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Write operations follow Validate → Perform → Verify → Archive → Respond.
//
//  1. VALIDATE  - check every input before anything is written
//  2. PERFORM   - do the write
//  3. VERIFY    - read back independently; never trust Perform's own report
//  4. ARCHIVE   - finalize state that depends on verified data (indexes)
//  5. RESPOND   - shape the result for the caller
//
// The read path never goes through here; it is only used by admin tooling.

// ExecutionStep names a step of an operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step  ExecutionStep
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Step, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Operation defines the functions for each step. Nil steps are skipped.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation for logging.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs op against input, stopping at the first failing step.
func Execute[I, P, V, O any](ctx context.Context, op Operation[I, P, V, O], input I) (O, error) {
	var (
		zero      O
		performed P
		verified  V
		result    O
	)

	logger := logging.FromContext(ctx).With(slog.String("operation", op.Name))
	start := time.Now()

	steps := []struct {
		step ExecutionStep
		run  func() error
	}{
		{StepValidate, func() error {
			if op.Validate == nil {
				return nil
			}
			return op.Validate(ctx, input)
		}},
		{StepPerform, func() (err error) {
			if op.Perform == nil {
				return nil
			}
			performed, err = op.Perform(ctx, input)
			return err
		}},
		{StepVerify, func() (err error) {
			if op.Verify == nil {
				return nil
			}
			verified, err = op.Verify(ctx, input, performed)
			return err
		}},
		{StepArchive, func() error {
			if op.Archive == nil {
				return nil
			}
			return op.Archive(ctx, input, verified)
		}},
		{StepRespond, func() (err error) {
			if op.Respond == nil {
				return nil
			}
			result, err = op.Respond(ctx, input, verified)
			return err
		}},
	}

	for _, s := range steps {
		logger.DebugContext(ctx, "step started", slog.String("step", string(s.step)))

		if err := s.run(); err != nil {
			level := slog.LevelError
			if s.step == StepValidate {
				level = slog.LevelWarn
			}

			logger.Log(ctx, level, "step failed",
				slog.String("step", string(s.step)),
				slog.Any("error", err),
			)

			return zero, &ExecutionError{Step: s.step, Cause: err}
		}
	}

	logger.InfoContext(ctx, "operation completed",
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
