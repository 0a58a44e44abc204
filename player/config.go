package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/cubeling/movement"
	"github.com/milk9111/cubeling/prefabs"
)

type Config struct {
	Ground     movement.GroundConfig
	Locomotion movement.LocomotionConfig
	Reorient   movement.ReorientConfig
	// StartParts are attached in order when the controller is built.
	StartParts []mgl32.Vec3
}

func DefaultConfig() Config {
	return Config{
		Ground:     movement.DefaultGroundConfig(),
		Locomotion: movement.DefaultLocomotionConfig(),
		Reorient:   movement.DefaultReorientConfig(),
		StartParts: []mgl32.Vec3{{0, 0, 0}, {0, 0, 1}},
	}
}

// ConfigFromSpec maps prefab tuning onto the movement configs.
func ConfigFromSpec(spec *prefabs.PlayerSpec) Config {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg
	}

	cfg.Ground.RayLength = spec.RayLength
	cfg.Locomotion = movement.LocomotionConfig{
		Speed:          spec.Speed,
		Friction:       spec.Friction,
		IdleEpsilon:    spec.IdleEpsilon,
		FallThreshold:  spec.FallThreshold,
		RecoveryOffset: spec.RecoveryOffset,
	}
	cfg.Reorient.RotationSpeed = spec.RotationSpeed
	cfg.Reorient.CheckHalfExtent = spec.CheckHalfExtent

	if len(spec.StartParts) > 0 {
		cfg.StartParts = make([]mgl32.Vec3, 0, len(spec.StartParts))
		for _, p := range spec.StartParts {
			cfg.StartParts = append(cfg.StartParts, p.Vec3())
		}
	}
	return cfg
}
