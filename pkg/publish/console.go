package publish

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Publisher defines where flattened metrics go.
type Publisher interface {
	Publish(ctx context.Context, topic, value string) error
}

// ConsolePublisher writes metrics to stdout, one "topic value" line each.
// Used in one-shot mode and for debugging.
type ConsolePublisher struct {
	w io.Writer
}

func NewConsolePublisher() *ConsolePublisher {
	return &ConsolePublisher{w: os.Stdout}
}

func (c *ConsolePublisher) Publish(_ context.Context, topic, value string) error {
	_, err := fmt.Fprintf(c.w, "%s %s\n", topic, value)
	return err
}
