package body

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/common"
)

var faceNormals = [6]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// fallbackNormal is used when the external point sits on a part center and
// no face direction can be scored.
var fallbackNormal = mgl32.Vec3{0, 1, 0}

// Candidate describes where a new part would be attached.
type Candidate struct {
	// Part is the existing part closest to the external point.
	Part Part
	// Normal is the chosen face in the assembly frame.
	Normal mgl32.Vec3
	// WorldNormal is Normal rotated into world space.
	WorldNormal mgl32.Vec3
	// Position is the proposed local position of the new part.
	Position mgl32.Vec3
	// Score is the dot product that selected Normal, in [-1, 1].
	Score float32
}

// ComputeAttachmentCandidate finds the part nearest to external and the face
// of that part pointing most directly at it.
func (a *Assembly) ComputeAttachmentCandidate(external mgl32.Vec3) (Candidate, bool) {
	if a == nil || len(a.parts) == 0 {
		return Candidate{}, false
	}

	nearest := a.parts[0]
	nearestWorld := a.WorldPosition(nearest)
	best := common.DistanceSqr(nearestWorld, external)
	for _, p := range a.parts[1:] {
		w := a.WorldPosition(p)
		if d := common.DistanceSqr(w, external); d < best {
			best = d
			nearest = p
			nearestWorld = w
		}
	}

	_, rot := a.origin()
	normal := fallbackNormal
	score := float32(1)

	toPart := nearestWorld.Sub(external)
	if toPart.Dot(toPart) > common.Epsilon*common.Epsilon {
		dir := toPart.Normalize()
		for _, n := range faceNormals {
			if s := dir.Dot(rot.Rotate(n)); s < score {
				score = s
				normal = n
			}
		}
	}

	return Candidate{
		Part:        nearest,
		Normal:      normal,
		WorldNormal: rot.Rotate(normal),
		Position:    nearest.Position.Add(normal),
		Score:       score,
	}, true
}
