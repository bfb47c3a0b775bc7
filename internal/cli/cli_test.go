package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/update"
	"github.com/sandeepkv93/tasklist/internal/views"
)

// run executes one CLI invocation against the file backend rooted at dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TASKLIST_LOG_FILE", "")
	cmd := newRootCmd(&App{runProgram: func(tea.Model) error { return nil }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--backend", "file", "--path", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := run(t, dir, args...)
	if err != nil {
		t.Fatalf("tasklist %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestListEmptyPrintsPlaceholder(t *testing.T) {
	out := mustRun(t, t.TempDir(), "list")
	if strings.TrimSpace(out) != views.EmptyPlaceholder {
		t.Fatalf("expected placeholder, got %q", out)
	}
}

func TestAddToggleEditAcrossInvocations(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "Buy", "milk")
	mustRun(t, dir, "add", "Walk dog")
	mustRun(t, dir, "toggle", "2")
	mustRun(t, dir, "edit", "1", "Buy oat milk")

	out := mustRun(t, dir, "list")
	want := "1. [ ] Buy oat milk\n2. [x] Walk dog\n"
	if out != want {
		t.Fatalf("unexpected list:\n%s\nwant:\n%s", out, want)
	}
}

func TestMoveAndRemove(t *testing.T) {
	dir := t.TempDir()
	for _, task := range []string{"A", "B", "C"} {
		mustRun(t, dir, "add", task)
	}
	out := mustRun(t, dir, "mv", "1", "3")
	if out != "1. [ ] B\n2. [ ] C\n3. [ ] A\n" {
		t.Fatalf("unexpected order after mv: %q", out)
	}

	out = mustRun(t, dir, "rm", "#2")
	if out != "removed 2. C\n" {
		t.Fatalf("unexpected rm output: %q", out)
	}
	if out := mustRun(t, dir, "list"); out != "1. [ ] B\n2. [ ] A\n" {
		t.Fatalf("unexpected list after rm: %q", out)
	}
}

func TestAddBlankIsRejected(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, dir, "add", "   ")
	if !errors.Is(err, errInvalidTask) {
		t.Fatalf("expected invalid task error, got %v", err)
	}
	if out := mustRun(t, dir, "list"); strings.TrimSpace(out) != views.EmptyPlaceholder {
		t.Fatalf("list should be unchanged, got %q", out)
	}
}

func TestRowOutOfRange(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "Only")
	if _, err := run(t, dir, "toggle", "4"); err == nil || !strings.Contains(err.Error(), "no task at row 4") {
		t.Fatalf("expected row error, got %v", err)
	}
	if _, err := run(t, dir, "mv", "1", "2"); err == nil {
		t.Fatal("expected out-of-range move to fail")
	}
	if _, err := run(t, dir, "rm", "zero"); err == nil {
		t.Fatal("expected invalid row to fail")
	}
}

func TestClearErasesSlotFile(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "A")
	matches, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	if len(matches) != 1 {
		t.Fatalf("expected one slot file, got %v", matches)
	}

	mustRun(t, dir, "clear")
	matches, _ = filepath.Glob(filepath.Join(dir, "*.json"))
	if len(matches) != 0 {
		t.Fatalf("expected slot file removed, got %v", matches)
	}
}

func TestSlotFlagSeparatesLists(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "--slot", "work", "add", "Ship it")
	if out := mustRun(t, dir, "list"); strings.TrimSpace(out) != views.EmptyPlaceholder {
		t.Fatalf("default slot should be empty, got %q", out)
	}
	if out := mustRun(t, dir, "--slot", "work", "list"); out != "1. [ ] Ship it\n" {
		t.Fatalf("unexpected work list: %q", out)
	}
}

func TestSQLiteBackend(t *testing.T) {
	t.Setenv("TASKLIST_LOG_FILE", "")
	path := filepath.Join(t.TempDir(), "tasks.db")
	for _, args := range [][]string{{"add", "Persist me"}, {"toggle", "1"}} {
		cmd := newRootCmd(&App{})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--backend", "sqlite", "--path", path}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	cmd := newRootCmd(&App{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--backend", "sqlite", "--path", path, "list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list: %v", err)
	}
	if out.String() != "1. [x] Persist me\n" {
		t.Fatalf("unexpected sqlite list: %q", out.String())
	}
}

func TestListSavedReportsSQLiteWriteTime(t *testing.T) {
	t.Setenv("TASKLIST_LOG_FILE", "")
	path := filepath.Join(t.TempDir(), "saved.db")
	list := func() string {
		t.Helper()
		cmd := newRootCmd(&App{})
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--backend", "sqlite", "--path", path, "list", "--saved"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("list --saved: %v", err)
		}
		return out.String()
	}

	if out := list(); !strings.HasSuffix(out, "last saved: never\n") {
		t.Fatalf("expected never saved, got %q", out)
	}

	cmd := newRootCmd(&App{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend", "sqlite", "--path", path, "add", "Stamp me"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(list()), "\n")
	if len(lines) != 2 || lines[0] != "1. [ ] Stamp me" {
		t.Fatalf("unexpected list output: %q", lines)
	}
	stamp, ok := strings.CutPrefix(lines[1], "last saved: ")
	if !ok {
		t.Fatalf("missing save time line: %q", lines[1])
	}
	if _, err := time.Parse(time.RFC3339, stamp); err != nil {
		t.Fatalf("save time %q is not RFC3339: %v", stamp, err)
	}
}

func TestListSavedOnFileBackend(t *testing.T) {
	out := mustRun(t, t.TempDir(), "list", "--saved")
	if !strings.Contains(out, "last saved: unknown (file backend)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRootRunsTUIWithLoadedModel(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "From CLI")

	var got update.Model
	cmd := newRootCmd(&App{runProgram: func(m tea.Model) error {
		got = m.(update.Model)
		return nil
	}})
	cmd.SetArgs([]string{"--backend", "file", "--path", dir, "--slot", "todo-local-cache"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("root: %v", err)
	}
	if got.ListID != "todo-local-cache" {
		t.Fatalf("expected list id from slot, got %q", got.ListID)
	}
	msg := got.Init()()
	loaded, ok := msg.(update.ItemsLoadedMsg)
	if !ok || loaded.Err != nil || len(loaded.Items) != 1 || loaded.Items[0].Task != "From CLI" {
		t.Fatalf("unexpected load result: %#v", msg)
	}
}

func TestInvalidBackendFlag(t *testing.T) {
	if _, err := run(t, t.TempDir(), "--backend", "redis", "list"); err == nil {
		t.Fatal("expected invalid backend error")
	}
}
