// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/cmk/internal/core/domain"
)

// ExecOptions controls how an invocation is spawned.
type ExecOptions struct {
	// Stdout and Stderr receive the process output. A nil writer sends the
	// lines to the logger instead.
	Stdout io.Writer
	Stderr io.Writer
	// TTY runs the process under a pseudo-terminal, merging both streams into Stdout.
	TTY bool
}

// Executor defines the interface for spawning composed invocations.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute spawns the invocation and waits for it to exit.
	//
	// The process inherits the current environment with the invocation's
	// overrides applied on top. It returns an error carrying the exit code
	// if the process fails.
	Execute(ctx context.Context, inv *domain.Invocation, opts ExecOptions) error
}
