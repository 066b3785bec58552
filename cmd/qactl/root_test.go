package main

import (
	"testing"

	"github.com/joshuapare/accesskit/quickaccess"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want quickaccess.Category
		ok   bool
	}{
		{"recent", quickaccess.RecentFiles, true},
		{"recent-files", quickaccess.RecentFiles, true},
		{"frequent", quickaccess.FrequentFolders, true},
		{"frequent-folders", quickaccess.FrequentFolders, true},
		{"all", quickaccess.All, true},
		{"", 0, false},
		{"Recent", 0, false},
		{"pinned", 0, false},
	}
	for _, tc := range cases {
		got, err := parseCategory(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("parseCategory(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("parseCategory(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("parseCategory(%q) accepted invalid input", tc.in)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"query", "add", "remove", "empty", "visible", "show", "hide", "feasible", "version"}
	have := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
