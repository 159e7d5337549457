package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// TuningPath is the default path of the tuning file, relative to the process working directory.
const TuningPath = "config/vehicle.yaml"

// ErrInvalidTuning is wrapped by every Validate failure.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every constant the simulation is built from. It is read once at startup; the
// console edits a Clone and can Save it back.
type Tuning struct {
	Window   Window              `yaml:"window"`
	World    World               `yaml:"world"`
	Vehicle  Vehicle             `yaml:"vehicle"`
	Rig      Rig                 `yaml:"rig"`
	Drive    Drive               `yaml:"drive"`
	Steering Steering            `yaml:"steering"`
	Camera   Camera              `yaml:"camera"`
	Terrain  Terrain             `yaml:"terrain"`
	Bindings map[string][]string `yaml:"bindings"`
}

// Window controls the render window.
type Window struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	TargetFPS   int    `yaml:"target_fps"`
	Fullscreen  bool   `yaml:"fullscreen"`
	GridVisible bool   `yaml:"grid_visible"`
}

// World controls the physics world. MaxStep is the upper bound on the time advanced per frame.
type World struct {
	Gravity  mgl64.Vec3 `yaml:"gravity"`
	Substeps int        `yaml:"substeps"`
	MaxStep  float64    `yaml:"max_step"`
}

// Material mirrors physics.Material for the file format.
type Material struct {
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
}

// Vehicle is the body geometry. Wheel mounts sit at (±Track, MountHeight, FrontAxle|RearAxle)
// in the chassis frame. Wheel widths only affect drawing.
type Vehicle struct {
	ChassisHalfExtents mgl64.Vec3 `yaml:"chassis_half_extents"`
	ChassisMass        float64    `yaml:"chassis_mass"`
	SpawnHeight        float64    `yaml:"spawn_height"`
	WheelMass          float64    `yaml:"wheel_mass"`
	FrontWheelRadius   float64    `yaml:"front_wheel_radius"`
	RearWheelRadius    float64    `yaml:"rear_wheel_radius"`
	FrontWheelWidth    float64    `yaml:"front_wheel_width"`
	RearWheelWidth     float64    `yaml:"rear_wheel_width"`
	Track              float64    `yaml:"track"`
	FrontAxle          float64    `yaml:"front_axle"`
	RearAxle           float64    `yaml:"rear_axle"`
	MountHeight        float64    `yaml:"mount_height"`
	WheelMaterial      Material   `yaml:"wheel_material"`
	GroundMaterial     Material   `yaml:"ground_material"`
}

// Rig controls the hinges. The drive hinge pivot sits SuspensionOffset below the mount and is
// bounded by DriveMaxForce. FrontAxleMaxForce bounds how hard the front positional hinges hold
// the axle straight against the steering hinge; 0 leaves them rigid.
type Rig struct {
	SuspensionOffset  float64 `yaml:"suspension_offset"`
	DriveMaxForce     float64 `yaml:"drive_max_force"`
	FrontAxleMaxForce float64 `yaml:"front_axle_max_force"`
}

// Drive controls forwardVelocity. Increments are applied per tick.
type Drive struct {
	MaxVelocity    float64 `yaml:"max_velocity"`
	Increment      float64 `yaml:"increment"`
	CoastIncrement float64 `yaml:"coast_increment"`
}

// Steering controls steeringBias. AutoCenter returns the bias toward 0 when no steering key is
// held; off by default.
type Steering struct {
	Increment  float64 `yaml:"increment"`
	AutoCenter bool    `yaml:"auto_center"`
}

// Camera controls the chase camera. Offset is in the chassis frame.
type Camera struct {
	Offset mgl64.Vec3 `yaml:"offset"`
	Floor  float64    `yaml:"floor"`
	Blend  float64    `yaml:"blend"`
	Fovy   float64    `yaml:"fovy"`
}

// Terrain controls the ground and the scattered jumps. Seed 0 picks a time-based seed.
type Terrain struct {
	HalfSize       float64 `yaml:"half_size"`
	Obstacles      int     `yaml:"obstacles"`
	ObstacleRadius float64 `yaml:"obstacle_radius"`
	ObstacleTip    float64 `yaml:"obstacle_tip"`
	ObstacleHeight float64 `yaml:"obstacle_height"`
	Seed           int64   `yaml:"seed"`
	HeightJitter   float64 `yaml:"height_jitter"`
	NoiseFrequency float64 `yaml:"noise_frequency"`
	NoiseOctaves   int     `yaml:"noise_octaves"`
}

// Default returns the tuning of the original buggy.
func Default() Tuning {
	return Tuning{
		Window: Window{
			Title:       "rollcage",
			Width:       1280,
			Height:      720,
			TargetFPS:   60,
			GridVisible: true,
		},
		World: World{
			Gravity:  mgl64.Vec3{0, -9.82, 0},
			Substeps: 10,
			MaxStep:  0.1,
		},
		Vehicle: Vehicle{
			ChassisHalfExtents: mgl64.Vec3{0.5, 0.5, 1},
			ChassisMass:        1,
			SpawnHeight:        3,
			WheelMass:          1,
			FrontWheelRadius:   0.33,
			RearWheelRadius:    0.4,
			FrontWheelWidth:    0.2,
			RearWheelWidth:     0.33,
			Track:              1,
			FrontAxle:          -1,
			RearAxle:           1,
			MountHeight:        -0.5,
			WheelMaterial:      Material{Friction: 0.25, Restitution: 0.25},
			GroundMaterial:     Material{Friction: 0.25, Restitution: 0.25},
		},
		Rig: Rig{
			SuspensionOffset:  0.5,
			DriveMaxForce:     0.99,
			FrontAxleMaxForce: 0.5,
		},
		Drive: Drive{
			MaxVelocity:    100,
			Increment:      1,
			CoastIncrement: 0.25,
		},
		Steering: Steering{
			Increment: 0.1,
		},
		Camera: Camera{
			Offset: mgl64.Vec3{0, 2, 4},
			Floor:  1,
			Blend:  0.05,
			Fovy:   75,
		},
		Terrain: Terrain{
			HalfSize:       50,
			Obstacles:      200,
			ObstacleRadius: 1,
			ObstacleTip:    0.01,
			ObstacleHeight: 0.5,
			NoiseFrequency: 0.08,
			NoiseOctaves:   4,
		},
		Bindings: DefaultBindings(),
	}
}

// DefaultBindings maps each control to the keyboard keys that drive it.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"forward":  {"W", "Up"},
		"backward": {"S", "Down"},
		"left":     {"A", "Left"},
		"right":    {"D", "Right"},
		"brake":    {"Space"},
	}
}

// Validate reports the first value the simulation cannot run with.
func (t Tuning) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{t.World.Substeps >= 1, "world.substeps must be >= 1"},
		{t.World.MaxStep > 0, "world.max_step must be > 0"},
		{t.Vehicle.ChassisMass > 0, "vehicle.chassis_mass must be > 0"},
		{t.Vehicle.WheelMass > 0, "vehicle.wheel_mass must be > 0"},
		{t.Vehicle.FrontWheelRadius > 0 && t.Vehicle.RearWheelRadius > 0, "vehicle wheel radii must be > 0"},
		{t.Rig.DriveMaxForce > 0, "rig.drive_max_force must be > 0"},
		{t.Rig.FrontAxleMaxForce >= 0, "rig.front_axle_max_force must be >= 0"},
		{t.Drive.MaxVelocity > 0, "drive.max_velocity must be > 0"},
		{t.Drive.Increment > 0, "drive.increment must be > 0"},
		{t.Drive.CoastIncrement > 0 && t.Drive.CoastIncrement < t.Drive.Increment, "drive.coast_increment must be in (0, increment)"},
		{t.Steering.Increment > 0 && t.Steering.Increment <= 1, "steering.increment must be in (0, 1]"},
		{t.Camera.Blend > 0 && t.Camera.Blend <= 1, "camera.blend must be in (0, 1]"},
		{t.Terrain.HalfSize > 0, "terrain.half_size must be > 0"},
		{t.Terrain.Obstacles >= 0, "terrain.obstacles must be >= 0"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidTuning, c.what)
		}
	}
	return nil
}

// Clone returns a deep copy, so edits to the copy's bindings never reach the original.
func (t Tuning) Clone() Tuning {
	var out Tuning
	if err := copier.CopyWithOption(&out, &t, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which cannot happen for the same type
		panic(err)
	}
	return out
}

// Load reads tuning from path. A missing file returns Default() and no error; fields absent
// from the file keep their default values. Unknown fields and invalid values are errors.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("read tuning: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes t to path as YAML, creating the directory if needed.
func Save(path string, t Tuning) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
