// swayview is a CLI entry point over the render core: it resolves
// image sources into an ordered list, opens the first loadable entry,
// renders it into a viewport-sized buffer, and (since no window-surface
// backend ships in this module) exports that buffer as a PNG so the
// core can be driven and inspected without a GUI toolkit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/swayview/swayview/internal/cache"
	"github.com/swayview/swayview/internal/config"
	"github.com/swayview/swayview/internal/imageio"
	"github.com/swayview/swayview/internal/imagelist"
	"github.com/swayview/swayview/internal/logging"
	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/render"
	"github.com/swayview/swayview/internal/viewport"
	"github.com/swayview/swayview/internal/workerpool"

	"github.com/swayview/swayview/decoder"
)

// Exit codes per section 6.
const (
	exitClean         = 0
	exitInvalidArgs   = 1
	exitNoImageOpened = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("swayview", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to an ini config file")
	logPath := fs.String("log", "", "path to a log file (disabled if empty)")
	out := fs.String("out", "", "path to write the rendered PNG (required)")
	windowW := fs.Int("width", 1280, "viewport width")
	windowH := fs.Int("height", 720, "viewport height")
	recursive := fs.Bool("recursive", false, "recurse into directory sources")

	if err := fs.Parse(args); err != nil {
		return exitInvalidArgs
	}
	sources := fs.Args()
	if len(sources) == 0 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: swayview -out FILE [flags] SOURCE...")
		return exitInvalidArgs
	}

	var log logging.Logger
	if *logPath != "" {
		fl := logging.New(logging.Config{Path: *logPath, MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 7, Level: logging.Info})
		defer fl.Sync()
		log = fl
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath, log)
		if err != nil {
			if log != nil {
				log.Log(logging.Warning, "could not load config file, using defaults", "path", *configPath, "error", err.Error())
			}
		} else {
			cfg = loaded
		}
	}

	registry := imageio.NewRegistry()
	decoder.RegisterAll(registry)

	list := imagelist.New(cfg.Order, cfg.Reverse, cfg.Loop)
	list.Initialize(nil)
	if err := list.Load(sources, *recursive); err != nil {
		fmt.Fprintf(os.Stderr, "swayview: could not load sources: %v\n", err)
		return exitInvalidArgs
	}
	if list.Len() == 0 {
		fmt.Fprintln(os.Stderr, "swayview: no sources resolved to any image")
		return exitNoImageOpened
	}

	history := cache.New(cfg.History)
	pool := workerpool.New(0)
	defer pool.Close()

	var opened *imageio.Image
	for _, entry := range list.Entries() {
		if _, err := imageio.Load(entry, registry); err != nil {
			entry.Failed = true
			if log != nil {
				log.Log(logging.Warning, "could not decode image", "source", entry.Source, "error", err.Error())
			}
			continue
		}
		opened = entry
		history.Put(entry)
		break
	}
	if opened == nil {
		fmt.Fprintln(os.Stderr, "swayview: no image could be opened")
		return exitNoImageOpened
	}

	vp := viewport.New(*windowW, *windowH)
	vp.ImageW = opened.Frames[0].Pix.Width
	vp.ImageH = opened.Frames[0].Pix.Height
	vp.WindowBG = cfg.WindowBG
	vp.TransparentBG = cfg.TransparentBG
	vp.AAMode = cfg.AA
	vp.ScaleSet(cfg.Scale)
	vp.Position(cfg.Position)

	dst, err := pixmap.New(vp.WindowW, vp.WindowH, pixmap.XRGBFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swayview: could not allocate window surface: %v\n", err)
		return exitNoImageOpened
	}
	if !vp.TransparentBG {
		dst.Fill(0, 0, dst.Width, dst.Height, vp.WindowBG)
	}
	render.Render(opened.Frames[0].Pix, dst, int(vp.X), int(vp.Y), vp.Scale, vp.AAMode, pool.Threads() > 1)

	rendered := &imageio.Image{Frames: []imageio.Frame{{Pix: dst}}}
	if err := imageio.Export(rendered, 0, *out); err != nil {
		fmt.Fprintf(os.Stderr, "swayview: could not export: %v\n", err)
		return exitNoImageOpened
	}

	if log != nil {
		log.Log(logging.Info, "rendered image", "source", opened.Source, "out", *out)
	}
	return exitClean
}
