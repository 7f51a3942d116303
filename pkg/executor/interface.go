package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteWithEnv runs the command with env appended to the current process environment.
	ExecuteWithEnv(ctx context.Context, env []string, name string, args ...string) (string, error)
}
