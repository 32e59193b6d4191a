package threshold

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"greyscale-inspector/internal/logger"
)

const PromptText = "Enter a threshold value between 0 and 1: "

// Prompter asks for the threshold once on a console. There is no retry.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	logger logger.Logger
}

func NewPrompter(in io.Reader, out io.Writer, log logger.Logger) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		logger: log,
	}
}

type lineResult struct {
	line string
	err  error
}

// Threshold prints the prompt and reads one line. Unusable input falls back
// to DefaultThreshold after a warning. I/O failures and ctx ending while the
// user has not answered are returned.
func (p *Prompter) Threshold(ctx context.Context) (float64, error) {
	if _, err := fmt.Fprint(p.out, PromptText); err != nil {
		return 0, fmt.Errorf("failed to write prompt: %w", err)
	}

	// The reader goroutine outlives a cancelled prompt; the process is
	// exiting by then.
	lines := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		lines <- lineResult{line: line, err: err}
	}()

	var res lineResult
	select {
	case res = <-lines:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	if res.err != nil && !errors.Is(res.err, io.EOF) {
		return 0, fmt.Errorf("failed to read threshold: %w", res.err)
	}

	value, invalid := Resolve(res.line)
	if invalid != nil {
		if _, err := fmt.Fprintf(p.out, "Invalid input: %v. Using default threshold of %v.\n", invalid, DefaultThreshold); err != nil {
			return 0, fmt.Errorf("failed to write warning: %w", err)
		}
		p.logger.Warning("Threshold", "falling back to default threshold", map[string]interface{}{
			"reason":    invalid.Error(),
			"threshold": DefaultThreshold,
		})
		return value, nil
	}

	p.logger.Debug("Threshold", "threshold accepted", map[string]interface{}{
		"threshold": value,
	})
	return value, nil
}
