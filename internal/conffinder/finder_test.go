package conffinder

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeConvention(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

// isolate points every lookup location at empty temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConvention, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestFind_Explicit(t *testing.T) {
	isolate(t)
	want := writeConvention(t, t.TempDir(), "custom.yaml")

	// Explicit should take priority over env
	t.Setenv(EnvConvention, "/some/other/path.yaml")

	got, err := Find(want)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_ExplicitInvalid(t *testing.T) {
	isolate(t)

	_, err := Find("/nonexistent/path.yaml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want %v", err, ErrNotFound)
	}
}

func TestFind_ExplicitDirectory(t *testing.T) {
	isolate(t)

	_, err := Find(t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want %v", err, ErrNotFound)
	}
}

func TestFind_EnvVar(t *testing.T) {
	isolate(t)
	want := writeConvention(t, t.TempDir(), "env.yaml")
	t.Setenv(EnvConvention, want)

	got, err := Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_EnvVarInvalid(t *testing.T) {
	isolate(t)
	t.Setenv(EnvConvention, "/nonexistent/path.yaml")

	_, err := Find("")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want %v", err, ErrNotFound)
	}
}

func TestFind_WorkingDirectory(t *testing.T) {
	isolate(t)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want := writeConvention(t, cwd, "nameconv.yml")

	got, err := Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_FileNamePriority(t *testing.T) {
	isolate(t)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	writeConvention(t, cwd, ".nameconv.yaml")
	want := writeConvention(t, cwd, "nameconv.yaml")

	got, err := Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_UserConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on Linux")
	}
	isolate(t)
	cfg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	dir := filepath.Join(cfg, "nameconv")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	want := writeConvention(t, dir, "nameconv.yaml")

	got, err := Find("")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != want {
		t.Errorf("Find() = %v, want %v", got, want)
	}
}

func TestFind_NotFound(t *testing.T) {
	isolate(t)

	_, err := Find("")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want %v", err, ErrNotFound)
	}
}

func TestResolveFile_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink test requires Unix")
	}
	dir := t.TempDir()
	want := writeConvention(t, dir, "target.yaml")
	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(want, link); err != nil {
		t.Fatal(err)
	}

	if got := resolveFile(link); got != want {
		t.Errorf("resolveFile() = %v, want %v", got, want)
	}
}

func TestResolveFile_NotExists(t *testing.T) {
	if got := resolveFile("/nonexistent/path.yaml"); got != "" {
		t.Errorf("resolveFile() = %v, want empty", got)
	}
}
