package body

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/physics"
)

func TestAttachmentCandidateFaces(t *testing.T) {
	cases := []struct {
		name     string
		external mgl32.Vec3
		normal   mgl32.Vec3
	}{
		{"above", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0}},
		{"below", mgl32.Vec3{0, -2, 0}, mgl32.Vec3{0, -1, 0}},
		{"right", mgl32.Vec3{1.2, 0.3, 0}, mgl32.Vec3{1, 0, 0}},
		{"behind", mgl32.Vec3{0.1, -0.2, -1}, mgl32.Vec3{0, 0, -1}},
		{"mostly_front", mgl32.Vec3{0.4, 0.4, 0.9}, mgl32.Vec3{0, 0, 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, _, _ := newTestAssembly(mgl32.Vec3{0, 0, 0})
			cand, ok := a.ComputeAttachmentCandidate(c.external)
			if !ok {
				t.Fatalf("expected a candidate")
			}
			if cand.Normal != c.normal {
				t.Fatalf("expected normal %v, got %v", c.normal, cand.Normal)
			}
			if cand.Position != c.normal {
				t.Fatalf("expected proposed position %v, got %v", c.normal, cand.Position)
			}
			if cand.Score >= 1 {
				t.Fatalf("score should be below the initial threshold, got %v", cand.Score)
			}
		})
	}
}

func TestAttachmentCandidateRotatedBody(t *testing.T) {
	rb := physics.NewRigidBody(mgl32.Vec3{})
	// Local +X points to world +Y.
	rb.SetOrientation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	a := NewAssembly(rb, nil)
	a.AttachPart(mgl32.Vec3{})

	cand, ok := a.ComputeAttachmentCandidate(mgl32.Vec3{0, 3, 0})
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Normal != (mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("expected local +X face, got %v", cand.Normal)
	}
	if !approx(cand.WorldNormal, mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("expected world normal +Y, got %v", cand.WorldNormal)
	}

	p := a.AttachPart(cand.Position)
	if got := a.WorldPosition(p); !approx(got, mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("new part should sit above the old one, got %v", got)
	}
}

func TestAttachmentScenarioGrowsAlongZ(t *testing.T) {
	a, _, _ := newTestAssembly(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	if size := a.Volume().Size.Z(); size != 2 {
		t.Fatalf("expected z size 2 before attaching, got %v", size)
	}

	cand, ok := a.ComputeAttachmentCandidate(mgl32.Vec3{0, 0, 2.5})
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Part.ID != 2 {
		t.Fatalf("expected nearest part 2, got %d", cand.Part.ID)
	}
	if cand.Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("expected +Z face, got %v", cand.Normal)
	}

	p := a.AttachPart(cand.Position)
	if got := a.WorldPosition(p); !approx(got, mgl32.Vec3{0, 0, 2}) {
		t.Fatalf("expected new part at (0,0,2), got %v", got)
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 parts, got %d", a.Len())
	}
	if size := a.Volume().Size.Z(); size != 3 {
		t.Fatalf("expected z size 3 after attaching, got %v", size)
	}
	if half := a.Volume().HalfExtent().Z(); half != 1.5 {
		t.Fatalf("expected z half extent 1.5, got %v", half)
	}
}

func TestAttachmentCandidateTieGoesToFirstPart(t *testing.T) {
	a, _, _ := newTestAssembly(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	cand, ok := a.ComputeAttachmentCandidate(mgl32.Vec3{0, 5, 0.5})
	if !ok {
		t.Fatalf("expected a candidate")
	}
	if cand.Part.ID != 1 {
		t.Fatalf("equidistant parts should resolve to the first attached, got %d", cand.Part.ID)
	}
}

func TestAttachmentCandidateDegeneratePoint(t *testing.T) {
	a, _, _ := newTestAssembly(mgl32.Vec3{0, 0, 0})
	cand, ok := a.ComputeAttachmentCandidate(mgl32.Vec3{})
	if !ok {
		t.Fatalf("expected a fallback candidate")
	}
	if cand.Normal != fallbackNormal {
		t.Fatalf("expected fallback normal %v, got %v", fallbackNormal, cand.Normal)
	}
}

func TestAttachmentCandidateEmptyAssembly(t *testing.T) {
	a := NewAssembly(nil, nil)
	if _, ok := a.ComputeAttachmentCandidate(mgl32.Vec3{1, 0, 0}); ok {
		t.Fatalf("empty assembly should not produce a candidate")
	}
}
