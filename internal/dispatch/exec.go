package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/malteki/cargo-cleaner/internal/logging"
)

type command struct {
	program string
	args    []string
	env     []string
	log     *slog.Logger
}

// run executes the command for one manifest and classifies the outcome.
func (c command) run(manifest string) Result {
	args := renderArgs(c.args, manifest)
	cmd := exec.Command(c.program, args...)
	cmd.Env = c.env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		var ee *exec.Error
		msg := fmt.Sprintf("program %s start failed: %v", c.program, err)
		if errors.As(err, &ee) {
			msg = fmt.Sprintf("program %s not found: %v", c.program, ee.Err)
		}
		c.log.Warn("cannot start clean command", "manifest", manifest, "err", msg)
		return Failed{Manifest: manifest, Err: msg}
	}

	res := Completed{Manifest: manifest, Success: true}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			msg := fmt.Sprintf("program %s execution failed: %v", c.program, err)
			c.log.Warn("clean command failed", "manifest", manifest, "err", msg)
			return Failed{Manifest: manifest, Err: msg}
		}
		res.Success = false
		res.ExitCode = exitErr.ExitCode()
	}
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()

	c.log.Log(context.Background(), logging.LevelTrace, "clean command finished",
		"manifest", manifest,
		"exit", res.ExitCode,
		"stdout", res.StdoutText(),
		"stderr", res.StderrText())
	return res
}

// applyEnvOverlay returns base with the overlay variables set, sorted by
// name.
func applyEnvOverlay(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return append([]string(nil), base...)
	}
	m := make(map[string]string, len(base)+len(overlay))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		m[k] = v
	}
	for k, v := range overlay {
		m[k] = v
	}
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func processEnv(overlay map[string]string) []string {
	return applyEnvOverlay(os.Environ(), overlay)
}
