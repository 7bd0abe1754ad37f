package journal

import "fmt"

// CommandError wraps a failed journal command with its name. Use errors.Is
// against the domain sentinels to classify the cause.
type CommandError struct {
	// Command is the command that failed (e.g., "close_trade", "review_card")
	Command string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for CommandError.
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Command, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Command, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

func newCommandError(command, message string, err error) *CommandError {
	return &CommandError{Command: command, Message: message, Err: err}
}
