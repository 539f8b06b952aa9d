package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandListsSubcommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range []string{"up", "down", "status"} {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("help output missing %q:\n%s", name, out.String())
		}
	}
}

func TestSubcommandsRejectArgs(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"up", "extra"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error for unexpected argument")
	}
}
