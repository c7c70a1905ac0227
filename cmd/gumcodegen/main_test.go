// Package main provides tests for the gumcodegen CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leapstack-labs/gumcodegen/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "gumcodegen v"+cli.Version) {
		t.Errorf("unexpected version output: %s", buf.String())
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Gum layout code generator") {
		t.Errorf("unexpected version output: %s", buf.String())
	}
}
