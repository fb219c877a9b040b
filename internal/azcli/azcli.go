// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azcli wraps the Azure CLI executable. Every operation in this
// module that touches the Azure control plane is a pass-through to az, so
// this package owns process execution, JSON decoding of az output, and the
// prerequisite checks (tool installed, logged in).
package azcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const executableName = "az"

var (
	// ErrNotInstalled is returned when the az executable cannot be found on the PATH.
	ErrNotInstalled = errors.New("the Azure CLI (az) is not installed or not on the PATH")
	// ErrNotLoggedIn is returned when the az account cannot be read, usually because `az login` has not been run.
	ErrNotLoggedIn = errors.New("not logged in to the Azure CLI, run `az login` first")
)

// Runner runs the az executable and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner is the Runner implementation that executes az as a subprocess.
type ExecRunner struct {
	path string
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner locates the az executable on the PATH.
func NewExecRunner() (*ExecRunner, error) {
	p, err := exec.LookPath(executableName)
	if err != nil {
		return nil, fmt.Errorf("azcli.NewExecRunner: %w: %w", ErrNotInstalled, err)
	}
	return &ExecRunner{path: p}, nil
}

// Run executes az with the supplied arguments. On a non-zero exit the
// captured standard error is included in the returned error.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("azcli: az %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Client is a thin, typed wrapper over a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a Client over the supplied Runner.
func NewClient(r Runner) *Client {
	return &Client{runner: r}
}

// NewClientFromPath creates a Client that executes the az binary found on the PATH.
func NewClientFromPath() (*Client, error) {
	r, err := NewExecRunner()
	if err != nil {
		return nil, err
	}
	return NewClient(r), nil
}

// Run executes az with the supplied arguments.
func (c *Client) Run(ctx context.Context, args ...string) ([]byte, error) {
	return c.runner.Run(ctx, args...)
}

// RunJSON executes az with the supplied arguments plus `--output json` and
// unmarshals the standard output into dst.
func (c *Client) RunJSON(ctx context.Context, dst any, args ...string) error {
	out, err := c.runner.Run(ctx, append(args, "--output", "json")...)
	if err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(out, dst); err != nil {
		return fmt.Errorf("azcli.RunJSON: unmarshalling az %s output: %w", strings.Join(args, " "), err)
	}
	return nil
}
