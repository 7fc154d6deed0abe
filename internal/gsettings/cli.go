package gsettings

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is the settings tool invoked by CLIStore
const DefaultBinary = "gsettings"

// commandRunner executes name with args and returns stdout and stderr
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

// CLIStore is a Store backed by the gsettings command line tool.
// Arguments are passed directly to the process, never through a shell.
type CLIStore struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
	run     commandRunner
}

// NewCLIStore creates a store that shells out to binary.
// A zero timeout means calls are bounded only by ctx.
func NewCLIStore(binary string, timeout time.Duration, logger *slog.Logger) *CLIStore {
	if binary == "" {
		binary = DefaultBinary
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIStore{
		binary:  binary,
		timeout: timeout,
		logger:  logger,
		run:     execCommand,
	}
}

// Get runs "gsettings get schema key"
func (s *CLIStore) Get(ctx context.Context, schema, key string) (string, error) {
	out, err := s.exec(ctx, "get", schema, key)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\r\n"), nil
}

// Set runs "gsettings set schema key value"
func (s *CLIStore) Set(ctx context.Context, schema, key, value string) error {
	_, err := s.exec(ctx, "set", schema, key, value)
	return err
}

func (s *CLIStore) exec(ctx context.Context, args ...string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	stdout, stderr, err := s.run(ctx, s.binary, args...)
	s.logger.Debug("gsettings command completed",
		"args", args,
		"duration_ms", time.Since(start).Milliseconds(),
		"failed", err != nil)

	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg == "" {
			msg = err.Error()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s %s: %w", s.binary, strings.Join(args, " "), ctxErr)
		}
		return nil, fmt.Errorf("%s %s failed: %s", s.binary, strings.Join(args, " "), msg)
	}
	return stdout, nil
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
