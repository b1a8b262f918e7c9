package registry

import (
	"testing"

	"github.com/vovakirdan/bs-replay/internal/core"
)

type stubView struct{ id string }

func (v stubView) ID() string               { return v.id }
func (v stubView) Title() string            { return "Stub " + v.id }
func (v stubView) Draw(*core.Screen, Scene) {}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() View { return stubView{id: "stub-a"} })
	Register("stub-b", func() View { return stubView{id: "stub-b"} })

	if !Exists("stub-a") || Exists("stub-missing") {
		t.Error("Exists() returned the wrong answer")
	}

	v, err := Create("stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if v.ID() != "stub-b" {
		t.Errorf("Create() returned view %q", v.ID())
	}

	if _, err := Create("stub-missing"); err == nil {
		t.Error("Create() should fail for an unknown view")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() View { return stubView{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("stub-dup", func() View { return stubView{id: "stub-dup"} })
}
