package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                                    { return g.id }
func (g *stubGame) Title() string                                 { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig)                      {}
func (g *stubGame) Step(core.InputFrame, float64) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                           {}
func (g *stubGame) State() core.GameState                         { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })
	Register("aa_stub", func() Game { return &stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") || Exists("missing") {
		t.Fatal("Exists() reports wrong membership")
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %v", list)
		}
	}

	g, err := Create("aa_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "AA_STUB" {
		t.Errorf("Title() = %q", g.Title())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown id")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })
}
