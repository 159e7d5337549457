package commands

import (
	"flag"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"rollcage/internal/config"
	"rollcage/internal/logger"
	"rollcage/internal/sim"
)

// Env is what the driving commands act on. Tuning is the live copy that save writes out;
// commands keep it in step with the changes they make to the simulation.
type Env struct {
	Sim        *sim.Simulation
	Tuning     *config.Tuning
	TuningPath string
	Log        *logger.Logger
	// SetGrid shows or hides the editor grid; nil when nothing draws one.
	SetGrid func(bool)
}

// RegisterDriving adds gravity, chase, grid, pause, steer, status, save and help.
func RegisterDriving(r *Registry, env *Env) {
	r.Register("gravity", "gravity [-x X] [-y Y] [-z Z]: set world gravity (m/s^2)", func(fs *flag.FlagSet) func() error {
		g := env.Sim.Engine.Gravity()
		x := fs.Float64("x", g[0], "gravity X")
		y := fs.Float64("y", g[1], "gravity Y")
		z := fs.Float64("z", g[2], "gravity Z")
		return func() error {
			g := mgl64.Vec3{*x, *y, *z}
			env.Sim.Engine.SetGravity(g)
			env.Tuning.World.Gravity = g
			env.Log.Logf("gravity %.2f %.2f %.2f", g[0], g[1], g[2])
			return nil
		}
	})

	r.Register("chase", "chase [-blend B] [-floor F]: tune the chase camera", func(fs *flag.FlagSet) func() error {
		blend := fs.Float64("blend", env.Sim.Chase.Blend, "fraction of the distance covered per tick, (0, 1]")
		floor := fs.Float64("floor", env.Sim.Chase.Floor, "lowest camera height")
		return func() error {
			if *blend <= 0 || *blend > 1 {
				return fmt.Errorf("chase: blend %.3f out of (0, 1]", *blend)
			}
			env.Sim.Chase.Blend = *blend
			env.Sim.Chase.Floor = *floor
			env.Tuning.Camera.Blend = *blend
			env.Tuning.Camera.Floor = *floor
			env.Log.Logf("chase blend %.3f floor %.2f", *blend, *floor)
			return nil
		}
	})

	r.Register("grid", "grid -show | -hide: toggle the editor grid", func(fs *flag.FlagSet) func() error {
		show := fs.Bool("show", false, "show the grid")
		hide := fs.Bool("hide", false, "hide the grid")
		return func() error {
			if *show == *hide {
				return fmt.Errorf("grid: pass exactly one of -show or -hide")
			}
			if env.SetGrid != nil {
				env.SetGrid(*show)
			}
			env.Tuning.Window.GridVisible = *show
			return nil
		}
	})

	r.Register("pause", "pause: freeze or resume the world", func(fs *flag.FlagSet) func() error {
		return func() error {
			env.Sim.SetPaused(!env.Sim.Paused())
			if env.Sim.Paused() {
				env.Log.Log("paused")
			} else {
				env.Log.Log("resumed")
			}
			return nil
		}
	})

	r.Register("steer", "steer [-autocenter=true|false]: steering return when keys are released", func(fs *flag.FlagSet) func() error {
		auto := fs.Bool("autocenter", env.Sim.Controller.AutoCenter, "return steering to center when released")
		return func() error {
			env.Sim.Controller.AutoCenter = *auto
			env.Tuning.Steering.AutoCenter = *auto
			env.Log.Logf("steering autocenter %t", *auto)
			return nil
		}
	})

	r.Register("status", "status: print the control state and chassis position", func(fs *flag.FlagSet) func() error {
		return func() error {
			p := env.Sim.Vehicle.ChassisPose().Position
			env.Log.Logf("%s | chassis %.2f %.2f %.2f | tick %d", env.Sim, p[0], p[1], p[2], env.Sim.Ticks())
			return nil
		}
	})

	r.Register("save", "save [-path P]: write the live tuning", func(fs *flag.FlagSet) func() error {
		path := fs.String("path", env.TuningPath, "destination file")
		return func() error {
			if err := config.Save(*path, *env.Tuning); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			env.Log.Logf("saved %s", *path)
			return nil
		}
	})

	r.Register("help", "help: list commands", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, n := range r.Names() {
				u, _ := r.Usage(n)
				env.Log.Log(u)
			}
			return nil
		}
	})
}
