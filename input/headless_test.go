package input_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/input"
)

// pad stands in for a device living outside the package.
type pad struct {
	input.State
}

func TestStateFromAnotherPackage(t *testing.T) {
	var p pad
	var held, just [input.ActionCount]bool
	held[input.ActionAttach] = true
	just[input.ActionAttach] = true

	p.Set(mgl32.Vec2{3, 4}, held, just)
	if got := p.ReadMoveVector(); !approx2(got, mgl32.Vec2{0.6, 0.8}) {
		t.Fatalf("expected a clamped move, got %v", got)
	}
	if !p.IsPressed(input.ActionMove) || !p.WasPressedThisFrame(input.ActionMove) {
		t.Fatalf("move should start this frame")
	}
	if !p.WasPressedThisFrame(input.ActionAttach) || p.IsPressed(input.ActionDetach) {
		t.Fatalf("buttons not recorded")
	}

	p.Set(mgl32.Vec2{0, 1}, held, [input.ActionCount]bool{})
	if !p.IsPressed(input.ActionMove) || p.WasPressedThisFrame(input.ActionMove) {
		t.Fatalf("same cardinal should hold without a new edge")
	}
}

// The simulation packages must build without a display, so only the
// device package and the game binary may import ebiten.
func TestHeadlessPackagesAvoidEbiten(t *testing.T) {
	dirs := []string{".", "../body", "../camera", "../common", "../event", "../levels",
		"../movement", "../physics", "../player", "../prefabs", "../sim", "../water", "../cmd/levelcheck"}
	for _, dir := range dirs {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("glob %s: %v", dir, err)
		}
		for _, name := range files {
			src, err := os.ReadFile(name)
			if err != nil {
				t.Fatalf("read %s: %v", name, err)
			}
			f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			for _, imp := range f.Imports {
				path, _ := strconv.Unquote(imp.Path.Value)
				if strings.HasPrefix(path, "github.com/hajimehoshi/ebiten") {
					t.Errorf("%s imports %s", name, path)
				}
			}
		}
	}
}

func approx2(a, b mgl32.Vec2) bool {
	return a.Sub(b).Len() < 1e-4
}
