package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"logmap/internal/atlas"
	"logmap/internal/config"
	"logmap/internal/logging"
	"logmap/internal/logparse"
	"logmap/internal/marker"
	"logmap/internal/raster"
	"logmap/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "logmap:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		flags      config.Flags
	)
	flag.StringVar(&configPath, "config", "", "JSON config file")
	flag.StringVar(&flags.Map, "map", "", "map profile name")
	flag.StringVar(&flags.Profiles, "profiles", "", "map profiles JSON file")
	flag.StringVar(&flags.DebugLog, "debug-log", "", "debug log file")
	flag.StringVar(&flags.ExportPath, "export", "", "render to this .png or .webp and exit")
	flag.IntVar(&flags.ExportSize, "size", 0, "export image size in pixels")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: logmap [flags] [logfile]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	flags.LogFile = flag.Arg(0)

	var cfg config.Config
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	headless := flags.ExportPath != ""
	cfg.Resolve(flags)

	cleanup, err := logging.Init(cfg.DebugLog, cfg.DebugLevel)
	if err != nil {
		return err
	}
	defer cleanup()

	profiles := atlas.Builtin()
	if cfg.ProfilesExist() {
		if profiles, err = atlas.LoadProfiles(cfg.Profiles); err != nil {
			return err
		}
	}
	profile, err := atlas.Lookup(profiles, cfg.Map)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, atlas.Names(profiles))
	}
	log.Info().Str("map", profile.Name).Str("profiles", cfg.Profiles).Str("log", cfg.LogFile).Msg("starting")

	if headless {
		return export(cfg, profile)
	}

	m := tui.New(tui.Options{
		Profiles:     profiles,
		Map:          profile.Name,
		LogPath:      cfg.LogFile,
		ProfilesPath: cfg.Profiles,
		ImageDir:     cfg.ImageDir,
		ExportPath:   cfg.ExportPath,
		ExportSize:   cfg.ExportSize,
		GridStep:     float64(cfg.GridStep),
		Store:        marker.NewMemoryStore(),
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error().Err(err).Msg("ui exited")
		return err
	}
	return nil
}

// export renders the log over the map without starting the UI.
func export(cfg config.Config, p atlas.Profile) error {
	var recs []logparse.Record
	if cfg.LogFile != "" {
		f, err := os.Open(cfg.LogFile)
		if err != nil {
			return err
		}
		recs, err = logparse.Parse(f)
		f.Close()
		if err != nil {
			return err
		}
	}
	scene := raster.Scene{
		Calibration: p.Calibration,
		Records:     recs,
		Layers:      atlas.Layers(p.Name),
		ShowGrid:    true,
		GridStep:    float64(cfg.GridStep),
	}
	if err := tui.Export(p, cfg.ImageDir, cfg.ExportPath, cfg.ExportSize, scene); err != nil {
		return err
	}
	fmt.Printf("%s: %d records\n", cfg.ExportPath, len(recs))
	return nil
}
