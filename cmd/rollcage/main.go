package main

import (
	"flag"
	"fmt"
	"os"

	"rollcage/internal/commands"
	"rollcage/internal/config"
	"rollcage/internal/env"
	"rollcage/internal/graphics"
	"rollcage/internal/hud"
	"rollcage/internal/input"
	"rollcage/internal/logger"
	"rollcage/internal/physics"
	"rollcage/internal/scene"
	"rollcage/internal/sim"
	"rollcage/internal/terminal"
	"rollcage/internal/terrain"
)

func main() {
	envErr := env.Load(".env")
	tuningPath := flag.String("config", env.Get("CONFIG", config.TuningPath), "vehicle tuning file (YAML)")
	logPath := flag.String("log", env.Get("LOG", logger.DefaultPath), "log file")
	flag.Parse()

	log := logger.New(*logPath)
	if envErr != nil {
		log.Log(envErr.Error())
	}
	if err := run(*tuningPath, log); err != nil {
		log.Log("fatal: " + err.Error())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(tuningPath string, log *logger.Logger) error {
	tuning, err := config.Load(tuningPath)
	if err != nil {
		return err
	}
	log.Logf("tuning from %s", tuningPath)

	world := physics.NewWorld(tuning.World.Gravity, tuning.World.Substeps)
	defer world.Close()
	obstacles := terrain.Scatter(terrain.OptionsFrom(tuning.Terrain))
	scn := scene.New(tuning.Terrain.HalfSize, tuning.Window.GridVisible)

	s, err := sim.New(tuning, world, obstacles, scn, log)
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}
	kb, err := input.NewKeyboard(tuning.Bindings)
	if err != nil {
		return err
	}

	overlay := hud.New()
	live := tuning.Clone()
	reg := commands.NewRegistry(log)
	commands.RegisterDriving(reg, &commands.Env{
		Sim:        s,
		Tuning:     &live,
		TuningPath: tuningPath,
		Log:        log,
		SetGrid:    scn.SetGridVisible,
	})
	reg.Register("hud", "hud [-show=true|false] [-fps=true|false]: driving readout and FPS counter", func(fs *flag.FlagSet) func() error {
		show := fs.Bool("show", overlay.Visible, "show the driving readout")
		fps := fs.Bool("fps", overlay.ShowFPS, "show the FPS counter")
		return func() error {
			overlay.Visible = *show
			overlay.ShowFPS = *fps
			return nil
		}
	})

	term := terminal.New(log, reg)
	term.OnToggle = func(open bool) {
		if open {
			s.Keys.Reset()
		}
	}

	update := func(dt float64) {
		term.Update()
		if !term.IsOpen() {
			kb.Poll(&s.Keys)
		}
		s.Tick(dt)
	}
	draw := func() {
		scn.Draw()
		overlay.Draw(scn.Frame())
		term.Draw()
	}
	graphics.Run(graphics.Options{
		Title:      tuning.Window.Title,
		Width:      tuning.Window.Width,
		Height:     tuning.Window.Height,
		TargetFPS:  tuning.Window.TargetFPS,
		Fullscreen: tuning.Window.Fullscreen,
		OnClose:    scn.Unload,
	}, update, draw)
	log.Logf("closed after %d ticks", s.Ticks())
	return nil
}
