package anyburl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	learnMainClass = "de.unima.ki.anyburl.LearnReinforced"
	DefaultMaxHeap = "12G"
	DefaultJavaBin = "java"
)

// ToolError reports a non-zero exit of the learner or the rule applier.
type ToolError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %v", e.Command, e.ExitCode, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Tool invokes the AnyBURL rule learner and the IRIFAB rule applier.
// Both tools communicate through config files passed as the last argument.
type Tool struct {
	Paths   Paths
	JavaBin string
	MaxHeap string
	// Timeout bounds a single invocation. Zero means no timeout.
	Timeout time.Duration
	// Output receives every line the tool prints on stdout or stderr.
	Output io.Writer
}

func NewTool(paths Paths) *Tool {
	return &Tool{
		Paths:   paths,
		JavaBin: DefaultJavaBin,
		MaxHeap: DefaultMaxHeap,
		Output:  os.Stdout,
	}
}

// Learn runs the rule learner with the given learn config.
func (t *Tool) Learn(ctx context.Context, learnConfigPath string) error {
	slog.Info("Learning rules", "config", learnConfigPath, "jar", t.Paths.Jar)
	return t.run(ctx, t.JavaBin, "-Xmx"+t.MaxHeap, "-cp", t.Paths.Jar, learnMainClass, learnConfigPath)
}

// Apply runs the rule applier, which writes the prediction file named in
// the apply config.
func (t *Tool) Apply(ctx context.Context, applyConfigPath string) error {
	slog.Info("Applying rules", "config", applyConfigPath, "binary", t.Paths.Irifab)
	return t.run(ctx, t.Paths.Irifab, applyConfigPath)
}

// run starts the command and drains stdout and stderr line by line until
// both reach EOF, then waits for the process to exit.
func (t *Tool) run(ctx context.Context, name string, args ...string) error {
	start := time.Now()
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	sink := &lineSink{w: t.Output}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		sink.drain(stdout, "stdout")
	}()
	go func() {
		defer wg.Done()
		sink.drain(stderr, "stderr")
	}()
	wg.Wait()

	err = cmd.Wait()
	if err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &ToolError{Command: name, ExitCode: code, Err: err}
	}

	slog.Info("Tool finished", "command", name, "duration", time.Since(start))
	return nil
}

type lineSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *lineSink) drain(r io.Reader, stream string) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		s.write(line)
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("Reading tool output failed", "stream", stream, "error", err)
		_, _ = io.Copy(io.Discard, r)
	}
}

func (s *lineSink) write(line string) {
	if s.w == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}
