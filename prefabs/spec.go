package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

type PlayerSpec struct {
	Name            string          `yaml:"name"`
	Speed           float32         `yaml:"speed"`
	Friction        float32         `yaml:"friction"`
	IdleEpsilon     float32         `yaml:"idle_epsilon"`
	FallThreshold   float32         `yaml:"fall_threshold"`
	RecoveryOffset  float32         `yaml:"recovery_offset"`
	RayLength       float32         `yaml:"ray_length"`
	RotationSpeed   float32         `yaml:"rotation_speed"`
	CheckHalfExtent float32         `yaml:"check_half_extent"`
	StartParts      []Vec3Spec      `yaml:"start_parts"`
	Colors          PlayerColorSpec `yaml:"colors"`
}

type PlayerColorSpec struct {
	Body           *YAMLColor `yaml:"body"`
	Latest         *YAMLColor `yaml:"latest"`
	Candidate      *YAMLColor `yaml:"candidate"`
	Water          *YAMLColor `yaml:"water"`
	WaterHighlight *YAMLColor `yaml:"water_highlight"`
	Solid          *YAMLColor `yaml:"solid"`
}

// DefaultPlayerSpec is the tuning used for any field a prefab leaves unset.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Name:            "player",
		Speed:           5,
		Friction:        0.2,
		IdleEpsilon:     0.01,
		FallThreshold:   -30,
		RecoveryOffset:  2,
		RayLength:       0.6,
		RotationSpeed:   0.15,
		CheckHalfExtent: 0.45,
		StartParts:      []Vec3Spec{{0, 0, 0}, {0, 0, 1}},
	}
}

func (s *PlayerSpec) applyDefaults() {
	def := DefaultPlayerSpec()
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.Speed == 0 {
		s.Speed = def.Speed
	}
	if s.Friction == 0 {
		s.Friction = def.Friction
	}
	if s.IdleEpsilon == 0 {
		s.IdleEpsilon = def.IdleEpsilon
	}
	if s.FallThreshold == 0 {
		s.FallThreshold = def.FallThreshold
	}
	if s.RecoveryOffset == 0 {
		s.RecoveryOffset = def.RecoveryOffset
	}
	if s.RayLength == 0 {
		s.RayLength = def.RayLength
	}
	if s.RotationSpeed == 0 {
		s.RotationSpeed = def.RotationSpeed
	}
	if s.CheckHalfExtent == 0 {
		s.CheckHalfExtent = def.CheckHalfExtent
	}
	if len(s.StartParts) == 0 {
		s.StartParts = def.StartParts
	}
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if spec.Friction < 0 || spec.Friction > 1 {
		return nil, fmt.Errorf("prefabs: player.yaml: friction %v outside [0, 1]", spec.Friction)
	}
	return &spec, nil
}

type CollectorSpec struct {
	RangeSqr float32    `yaml:"range_sqr"`
	Needed   int        `yaml:"needed"`
	Color    *YAMLColor `yaml:"color"`
	Done     *YAMLColor `yaml:"done_color"`
}

func LoadCollectorSpec() (*CollectorSpec, error) {
	spec, err := LoadSpec[CollectorSpec]("collector.yaml")
	if err != nil {
		return nil, err
	}
	if spec.RangeSqr <= 0 {
		return nil, fmt.Errorf("prefabs: collector.yaml: range_sqr must be positive")
	}
	return &spec, nil
}

type CameraSpec struct {
	Distance   float32 `yaml:"distance"`
	Height     float32 `yaml:"height"`
	TurnSpeed  float32 `yaml:"turn_speed"`
	Smoothness float32 `yaml:"smoothness"`
	// PixelsPerUnit scales the top-down debug view.
	PixelsPerUnit float32 `yaml:"pixels_per_unit"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec]("camera.yaml")
	if err != nil {
		return nil, err
	}
	if spec.PixelsPerUnit <= 0 {
		spec.PixelsPerUnit = 24
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Or returns the parsed color, or fallback when c is unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
