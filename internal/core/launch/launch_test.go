package launch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveInvocation(t *testing.T) {
	cacheRoot := t.TempDir()
	instancePath := "7.4.11"

	libDir := filepath.Join(cacheRoot, instancePath, "lib", Platform())
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(libDir, "renpy"), []byte("#!"), 0o755); err != nil {
		t.Fatal(err)
	}
	entry := filepath.Join(cacheRoot, instancePath, "renpy.py")
	if err := os.WriteFile(entry, []byte("# renpy"), 0o644); err != nil {
		t.Fatal(err)
	}

	inv, err := ResolveInvocation(cacheRoot, instancePath)
	if err != nil {
		t.Fatalf("ResolveInvocation failed: %v", err)
	}

	if inv.LibDir != libDir {
		t.Errorf("LibDir = %s, want %s", inv.LibDir, libDir)
	}
	want := []string{filepath.Join(libDir, "renpy"), "-EO", entry}
	if len(inv.Args) != len(want) {
		t.Fatalf("Args = %v", inv.Args)
	}
	for i := range want {
		if inv.Args[i] != want[i] {
			t.Errorf("Args[%d] = %s, want %s", i, inv.Args[i], want[i])
		}
	}
}

func TestResolveInvocation_MissingPlatformFiles(t *testing.T) {
	cacheRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(cacheRoot, "7.4.11"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveInvocation(cacheRoot, "7.4.11"); err == nil {
		t.Error("ResolveInvocation without platform files unexpectedly succeeded")
	}
}

func TestResolveInvocation_MissingEntryScript(t *testing.T) {
	cacheRoot := t.TempDir()
	libDir := filepath.Join(cacheRoot, "7.4.11", "lib", Platform())
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := ResolveInvocation(cacheRoot, "7.4.11"); err == nil {
		t.Error("ResolveInvocation without renpy.py unexpectedly succeeded")
	}
}
