package contactform

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier surfaces the outcome of a submission to the visitor.
type Notifier interface {
	Success(title, description string)
	Error(title, description string)
}

// LogNotifier writes notifications to slog.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

// Success logs at info level.
func (n LogNotifier) Success(title, description string) {
	n.logger().Info(title, "description", description)
}

// Error logs at warn level.
func (n LogNotifier) Error(title, description string) {
	n.logger().Warn(title, "description", description)
}

// WriterNotifier prints notifications as single lines, for terminals.
type WriterNotifier struct {
	mu sync.Mutex
	W  io.Writer
}

// Success prints a success line.
func (n *WriterNotifier) Success(title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.W, "✓ %s %s\n", title, description)
}

// Error prints an error line.
func (n *WriterNotifier) Error(title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.W, "✗ %s %s\n", title, description)
}
