package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{DataDir: dir, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}

	st := Current()
	if !st.Enabled() || st.Err != nil {
		t.Fatalf("Current = %+v, want an open file", st)
	}
	if want := FilePath(dir); st.Path != want {
		t.Fatalf("Path = %q, want %q", st.Path, want)
	}
	if got, want := st.String(), st.Path+" (debug)"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}

	Component("store").Warn("store.load_failed", "key", "expenses")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}

	b, err := os.ReadFile(st.Path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(b)
	if !strings.Contains(out, `"msg":"store.load_failed"`) {
		t.Errorf("log missing message: %s", out)
	}
	if !strings.Contains(out, `"component":"store"`) {
		t.Errorf("log missing component: %s", out)
	}
	if !strings.Contains(out, `"msg":"logger.opened"`) {
		t.Errorf("debug record missing: %s", out)
	}

	after := Current()
	if after.Enabled() || !errors.Is(after.Err, ErrNotSetUp) {
		t.Errorf("Current after cleanup = %+v, want disabled with ErrNotSetUp", after)
	}
}

func TestSetup_InfoLevelDropsDebug(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{DataDir: dir})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	L().Debug("hidden")
	L().Info("shown")
	if err := cleanup(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(FilePath(dir))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "hidden") {
		t.Errorf("debug record written at info level: %s", b)
	}
	if !strings.Contains(string(b), "shown") {
		t.Errorf("info record missing: %s", b)
	}
}

func TestSetup_ReplacesEarlierSink(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	cleanupFirst, err := Setup(Config{DataDir: first})
	if err != nil {
		t.Fatal(err)
	}
	cleanupSecond, err := Setup(Config{DataDir: second})
	if err != nil {
		t.Fatal(err)
	}

	if err := cleanupFirst(); err != nil {
		t.Errorf("stale cleanup error: %v", err)
	}
	if got := Current().Path; got != FilePath(second) {
		t.Errorf("stale cleanup disabled the active sink, Path = %q", got)
	}
	if err := cleanupSecond(); err != nil {
		t.Errorf("cleanup error: %v", err)
	}
	if Current().Enabled() {
		t.Error("still enabled after cleanup")
	}
}

func TestSetup_FailureDisablesLogging(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Setup(Config{DataDir: blocker}); err == nil {
		t.Fatal("Setup under a regular file should fail")
	}
	st := Current()
	if st.Enabled() {
		t.Error("logger enabled after a failed Setup")
	}
	if st.Err == nil || errors.Is(st.Err, ErrNotSetUp) {
		t.Errorf("Err = %v, want the open failure", st.Err)
	}
	if !strings.HasPrefix(st.String(), "disabled (") {
		t.Errorf("String = %q", st.String())
	}
	L().Info("dropped") // must not panic
}
