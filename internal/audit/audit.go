// Package audit collects findings from external audit tooling (dependency
// vulnerability and license/ban policy scanners) and merges them into a
// typed result set for presentation next to the compliance summary.
//
// Tool failures are normal outcomes here: every way a tool can fail to
// produce findings (not installed, timed out, bad exit, unparseable output)
// is recorded as an explicit unavailability reason so reports can render
// "N/A" instead of implying a clean scan.
package audit

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 60 * time.Second

// Reason classifies why a tool's findings are unavailable.
type Reason string

const (
	ReasonNotInstalled Reason = "not-installed"
	ReasonTimeout      Reason = "timeout"
	ReasonExitError    Reason = "exit-error"
	ReasonParseError   Reason = "parse-error"
)

// Result holds one tool's findings, or the reason they are unavailable.
// Metrics is nil exactly when Available is false; a tool that ran cleanly
// but found nothing reports zeros, which is a different statement than
// "did not run".
type Result struct {
	Tool      string         `json:"tool"`
	Available bool           `json:"available"`
	Metrics   map[string]int `json:"metrics,omitempty"`
	Reason    Reason         `json:"unavailable_reason,omitempty"`
	Detail    string         `json:"detail,omitempty"`
}

// Metric returns a sub-metric value and whether the tool reported it.
func (r Result) Metric(key string) (int, bool) {
	if !r.Available {
		return 0, false
	}
	v, ok := r.Metrics[key]
	if !ok {
		// Ran but did not mention the key: zero findings.
		return 0, true
	}
	return v, true
}

// Metrics is the merged output of one collection pass, in tool order.
type Metrics struct {
	CollectedAt string   `json:"collected_at"`
	Results     []Result `json:"results"`
}

// Lookup returns the result for a tool by name.
func (m *Metrics) Lookup(tool string) (Result, bool) {
	for _, r := range m.Results {
		if r.Tool == tool {
			return r, true
		}
	}
	return Result{}, false
}

// Tool describes one external audit tool invocation and how to interpret
// its standard output.
type Tool struct {
	Name  string
	Bin   string
	Args  []string
	Parse func(output []byte) (map[string]int, error)
}

// Runner invokes audit tools with a bounded timeout.
type Runner struct {
	timeout  time.Duration
	dir      string
	lookPath func(string) (string, error)
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-tool invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithDir sets the working directory tools run in, typically the root of
// the audited project.
func WithDir(dir string) Option {
	return func(r *Runner) { r.dir = dir }
}

// WithLookPath overrides binary lookup. Tests use this to simulate tools
// that are not installed.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.lookPath = fn
		}
	}
}

// NewRunner creates a runner with the default timeout and PATH lookup.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		timeout:  DefaultTimeout,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run invokes a single tool and always returns a usable Result; failures
// are folded into the unavailability fields, never returned as errors.
func (r *Runner) Run(ctx context.Context, tool Tool) Result {
	result := Result{Tool: tool.Name}

	if _, err := r.lookPath(tool.Bin); err != nil {
		result.Reason = ReasonNotInstalled
		result.Detail = fmt.Sprintf("%s not found in PATH", tool.Bin)
		return result
	}

	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, tool.Bin, tool.Args...)
	cmd.Dir = r.dir
	output, err := cmd.Output()
	if err != nil {
		result.Reason, result.Detail = classify(err, runCtx.Err())
		return result
	}

	metrics, err := tool.Parse(output)
	if err != nil {
		result.Reason = ReasonParseError
		result.Detail = err.Error()
		return result
	}

	result.Available = true
	result.Metrics = metrics
	return result
}

// Collect runs every tool in order and merges the results. One tool's
// failure never blocks the others; the compliance summary never depends on
// anything collected here.
func (r *Runner) Collect(ctx context.Context, tools ...Tool) Metrics {
	metrics := Metrics{
		CollectedAt: time.Now().UTC().Format(time.RFC3339),
		Results:     make([]Result, 0, len(tools)),
	}
	for _, tool := range tools {
		metrics.Results = append(metrics.Results, r.Run(ctx, tool))
	}
	return metrics
}

// classify maps an invocation error to an unavailability reason. The
// context error is consulted first: a killed process after deadline shows
// up as an exit error otherwise.
func classify(err, ctxErr error) (Reason, string) {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return ReasonTimeout, "invocation exceeded timeout"
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := fmt.Sprintf("exit status %d", exitErr.ExitCode())
		if msg := firstLine(exitErr.Stderr); msg != "" {
			detail += ": " + msg
		}
		return ReasonExitError, detail
	}
	return ReasonNotInstalled, err.Error()
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
