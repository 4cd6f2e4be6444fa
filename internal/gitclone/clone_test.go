package gitclone

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// makeSourceRepo creates a local repository with one committed file so a
// file:// clone has something to fetch.
func makeSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# src\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	run("add", "README.md")
	run("commit", "-q", "-m", "initial")
	return dir
}

func TestFetch(t *testing.T) {
	requireGit(t)
	src := makeSourceRepo(t)
	target := filepath.Join(t.TempDir(), "clone")

	g := New(30*time.Second, nil)
	if err := g.Fetch(context.Background(), src, target); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "README.md")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func TestFetch_ReplacesStaleTarget(t *testing.T) {
	requireGit(t)
	src := makeSourceRepo(t)
	target := filepath.Join(t.TempDir(), "clone")

	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	stale := filepath.Join(target, "stale.txt")
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	g := New(30*time.Second, nil)
	if err := g.Fetch(context.Background(), src, target); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale content should be removed before cloning")
	}
}

func TestFetch_BadSource(t *testing.T) {
	requireGit(t)
	target := filepath.Join(t.TempDir(), "clone")

	g := New(30*time.Second, nil)
	err := g.Fetch(context.Background(), filepath.Join(t.TempDir(), "no-such-repo"), target)
	if err == nil {
		t.Fatal("expected error for missing source")
	}

	// Failure leaves nothing behind.
	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Error("failed clone should not leave a target directory")
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	requireGit(t)
	src := makeSourceRepo(t)
	target := filepath.Join(t.TempDir(), "clone")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New(0, nil)
	err := g.Fetch(ctx, src, target)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
