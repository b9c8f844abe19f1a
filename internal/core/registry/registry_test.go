package registry

import (
	"testing"

	"github.com/kobaltcore/renutil/internal/core/version"
)

func TestNewInstance(t *testing.T) {
	inst := NewInstance(version.MustParse("7.4.11"))

	if inst.Path != "7.4.11" {
		t.Errorf("Path = %s", inst.Path)
	}
	if inst.LauncherPath != "7.4.11/launcher" {
		t.Errorf("LauncherPath = %s", inst.LauncherPath)
	}
}

func TestRegistry_AddRemove(t *testing.T) {
	reg := &Registry{}
	v := version.MustParse("7.4.11")

	if err := reg.Add(NewInstance(v)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !reg.Contains(v) {
		t.Error("Contains = false after Add")
	}

	// Uniqueness invariant
	if err := reg.Add(NewInstance(v)); err == nil {
		t.Error("Add of duplicate version unexpectedly succeeded")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d after rejected duplicate", reg.Len())
	}

	if !reg.Remove(v) {
		t.Error("Remove = false for installed version")
	}
	if reg.Contains(v) {
		t.Error("Contains = true after Remove")
	}
	if reg.Remove(v) {
		t.Error("Remove = true for missing version")
	}
}

func TestRegistry_Versions(t *testing.T) {
	reg := &Registry{}
	for _, s := range []string{"7.0.0", "7.4.11", "6.99.12"} {
		if err := reg.Add(NewInstance(version.MustParse(s))); err != nil {
			t.Fatal(err)
		}
	}

	got := reg.Versions()
	want := []string{"7.4.11", "7.0.0", "6.99.12"}
	for i, w := range want {
		if got[i].String() != w {
			t.Fatalf("Versions[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	v := version.MustParse("1.2.3")
	_, err := New([]Instance{NewInstance(v), NewInstance(v)})
	if err == nil {
		t.Error("New with duplicate versions unexpectedly succeeded")
	}
}

func TestRegistry_RejectsVersionlessInstance(t *testing.T) {
	reg := &Registry{}
	if err := reg.Add(Instance{Path: "7.4.11"}); err == nil {
		t.Error("Add of version-less instance unexpectedly succeeded")
	}
	if reg.Len() != 0 {
		t.Errorf("Len = %d after rejected instance", reg.Len())
	}

	_, err := New([]Instance{{Path: "7.4.11"}})
	if err == nil {
		t.Error("New with a version-less instance unexpectedly succeeded")
	}
}
