package scorer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"health_guardian/internal/domain"

	"github.com/sirupsen/logrus"
)

// ExecScorer runs the scorer as a subprocess: `<command> <script> <csv path>`
type ExecScorer struct {
	Command string
	Script  string
}

// NewExecScorer creates an ExecScorer
func NewExecScorer(command, script string) *ExecScorer {
	return &ExecScorer{Command: command, Script: script}
}

// Score runs the scorer over the CSV at path; the context bounds its runtime
func (s *ExecScorer) Score(ctx context.Context, path string) ([]domain.Prediction, error) {
	args := []string{path}
	if s.Script != "" {
		args = append([]string{s.Script}, args...)
	}
	cmd := exec.CommandContext(ctx, s.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// grandchildren may keep the output pipes open after the scorer is killed
	cmd.WaitDelay = 2 * time.Second
	if err := cmd.Run(); err != nil {
		logrus.WithFields(logrus.Fields{
			"command": s.Command,
			"stderr":  strings.TrimSpace(stderr.String()),
			"error":   err.Error(),
		}).Error("Scorer process failed")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("scorer timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("scorer exited: %w", err)
	}
	return ParseOutput(stdout.Bytes())
}
