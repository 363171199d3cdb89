package main

import (
	"flag"
	"fmt"
	"os"

	"mememe/internal/app"
	"mememe/internal/config"
	"mememe/internal/fonts"
	"mememe/internal/picker"
	"mememe/internal/platform/desktop"
	"mememe/internal/screen"
	"mememe/internal/share"
	"mememe/internal/ui"
	"mememe/pkg/meme"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mememe failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	screen.SetDebugLogging(cfg.Log.Debug || *debug)

	bank, err := fonts.NewBank()
	if err != nil {
		return err
	}
	backend := desktop.New(desktop.Config{
		KeyboardHeight: cfg.Keyboard.Height,
		CameraCommand:  cfg.Camera.Command,
	})
	media := picker.NewNative(picker.Options{
		CameraCommand: cfg.Camera.Command,
		CameraTimeout: cfg.Camera.Timeout,
		Capabilities:  backend.Capabilities(),
	})
	sheet := share.NewSheet(
		share.ClipboardTarget{},
		share.SaveAsTarget{},
		share.NewDirectoryTarget(cfg.Share.Dir),
	)

	application, err := app.New(cfg, screen.Deps{
		Store:    meme.NewStore(),
		Picker:   media,
		Sheet:    sheet,
		Platform: backend,
		Fonts:    bank,
		Theme:    ui.DefaultTheme(),
	})
	if err != nil {
		return err
	}
	return application.Run()
}
