// Package executor forwards translated statements to an execution back-end.
package executor

import (
	"context"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

// EchoExecutor is the default stand-in back-end: it accepts every statement
// and echoes its text as output. Deployments with a live emulator swap in
// their own ports.Executor.
type EchoExecutor struct{}

func NewEchoExecutor() *EchoExecutor {
	return &EchoExecutor{}
}

func (EchoExecutor) Execute(_ context.Context, stmt domain.Statement) (string, bool, error) {
	if stmt.IsEmpty() {
		return "", false, domain.NewError(domain.CodeExecutionError, "nothing to execute")
	}
	return stmt.Text(), true, nil
}

var _ ports.Executor = (*EchoExecutor)(nil)
