// Package config defines the flat configuration object consumed by
// the core (section 6's CLI surface) and an ini.v1-backed loader that
// falls back to defaults on invalid values.
package config

import (
	"gopkg.in/ini.v1"

	"github.com/swayview/swayview/internal/imagelist"
	"github.com/swayview/swayview/internal/logging"
	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/render"
	"github.com/swayview/swayview/internal/viewport"
)

// Config mirrors the table in section 6: every option the core
// recognizes, with defaults applied by Default().
type Config struct {
	// Order is the ImageList traversal ordering.
	Order imagelist.Order

	// Reverse reverses the configured order.
	Reverse bool

	// Recursive causes directory sources to be recursed into.
	Recursive bool

	// Loop wraps traversal at the ends of the list.
	Loop bool

	// Preload bounds the number of entries the preload cache may hold.
	Preload int

	// History bounds the number of entries the history cache may hold.
	History int

	// ThumbSize is the edge length, in pixels, of generated thumbnails.
	ThumbSize int

	// ThumbFill selects fill (crop-to-square) vs fit (scaled to fit
	// within ThumbSize, no padding) mode.
	ThumbFill bool

	// ThumbAA is the filter used when generating thumbnails.
	ThumbAA render.Filter

	// ThumbCacheMB bounds the on-disk persisted thumbnail cache size.
	ThumbCacheMB int

	// AA is the default antialiasing filter for full-size rendering.
	AA render.Filter

	// Scale is the default viewport scale mode.
	Scale viewport.ScaleMode

	// Position is the default viewport position mode.
	Position viewport.PositionMode

	// WindowBG is the color drawn behind transparent image regions.
	WindowBG pixmap.Color

	// TransparentBG disables WindowBG in favor of a checkerboard.
	TransparentBG bool

	// SlideshowSeconds is the interval between automatic slideshow
	// advances.
	SlideshowSeconds int
}

// Default returns the configuration used when no file or flag
// overrides a value.
func Default() Config {
	return Config{
		Order:            imagelist.OrderAlpha,
		Reverse:          false,
		Recursive:        false,
		Loop:             false,
		Preload:          4,
		History:          8,
		ThumbSize:        128,
		ThumbFill:        false,
		ThumbAA:          render.FilterBilinear,
		ThumbCacheMB:     64,
		AA:               render.FilterBilinear,
		Scale:            viewport.FitOptimal,
		Position:         viewport.PosCenter,
		WindowBG:         pixmap.ARGB(255, 0, 0, 0),
		TransparentBG:    false,
		SlideshowSeconds: 5,
	}
}

var orderNames = map[string]imagelist.Order{
	"none":    imagelist.OrderNone,
	"alpha":   imagelist.OrderAlpha,
	"numeric": imagelist.OrderNumeric,
	"mtime":   imagelist.OrderMtime,
	"size":    imagelist.OrderSize,
	"random":  imagelist.OrderRandom,
}

var scaleModeNames = map[string]viewport.ScaleMode{
	"fit_optimal": viewport.FitOptimal,
	"fit_window":  viewport.FitWindow,
	"fit_width":   viewport.FitWidth,
	"fit_height":  viewport.FitHeight,
	"fill_window": viewport.FillWindow,
	"real_size":   viewport.RealSize,
	"keep_zoom":   viewport.KeepZoom,
}

var positionModeNames = map[string]viewport.PositionMode{
	"free":         viewport.PosFree,
	"center":       viewport.PosCenter,
	"top":          viewport.PosTop,
	"bottom":       viewport.PosBottom,
	"left":         viewport.PosLeft,
	"right":        viewport.PosRight,
	"top_left":     viewport.PosTopLeft,
	"top_right":    viewport.PosTopRight,
	"bottom_left":  viewport.PosBottomLeft,
	"bottom_right": viewport.PosBottomRight,
}

var filterNames = map[string]render.Filter{
	"nearest":  render.FilterNearest,
	"box":      render.FilterBox,
	"bilinear": render.FilterBilinear,
	"bicubic":  render.FilterBicubic,
	"mks13":    render.FilterMKS13,
}

// Load reads an ini file at path, starting from Default() and
// overriding any recognized, validly-valued key. Invalid values are
// logged as warnings and left at their default.
func Load(path string, log logging.Logger) (Config, error) {
	cfg := Default()

	f, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}
	sec := f.Section("")

	if sec.HasKey("order") {
		if v, ok := orderNames[sec.Key("order").String()]; ok {
			cfg.Order = v
		} else {
			warn(log, "order", sec.Key("order").String())
		}
	}
	if sec.HasKey("reverse") {
		cfg.Reverse = boolOrWarn(log, "reverse", sec, cfg.Reverse)
	}
	if sec.HasKey("recursive") {
		cfg.Recursive = boolOrWarn(log, "recursive", sec, cfg.Recursive)
	}
	if sec.HasKey("loop") {
		cfg.Loop = boolOrWarn(log, "loop", sec, cfg.Loop)
	}
	if sec.HasKey("preload") {
		cfg.Preload = intOrWarn(log, "preload", sec, cfg.Preload)
	}
	if sec.HasKey("history") {
		cfg.History = intOrWarn(log, "history", sec, cfg.History)
	}
	if sec.HasKey("thumb_size") {
		cfg.ThumbSize = intOrWarn(log, "thumb_size", sec, cfg.ThumbSize)
	}
	if sec.HasKey("thumb_fill") {
		cfg.ThumbFill = boolOrWarn(log, "thumb_fill", sec, cfg.ThumbFill)
	}
	if sec.HasKey("thumb_aa") {
		if v, ok := filterNames[sec.Key("thumb_aa").String()]; ok {
			cfg.ThumbAA = v
		} else {
			warn(log, "thumb_aa", sec.Key("thumb_aa").String())
		}
	}
	if sec.HasKey("thumb_cache_mb") {
		cfg.ThumbCacheMB = intOrWarn(log, "thumb_cache_mb", sec, cfg.ThumbCacheMB)
	}
	if sec.HasKey("aa") {
		if v, ok := filterNames[sec.Key("aa").String()]; ok {
			cfg.AA = v
		} else {
			warn(log, "aa", sec.Key("aa").String())
		}
	}
	if sec.HasKey("scale") {
		if v, ok := scaleModeNames[sec.Key("scale").String()]; ok {
			cfg.Scale = v
		} else {
			warn(log, "scale", sec.Key("scale").String())
		}
	}
	if sec.HasKey("position") {
		if v, ok := positionModeNames[sec.Key("position").String()]; ok {
			cfg.Position = v
		} else {
			warn(log, "position", sec.Key("position").String())
		}
	}
	if sec.HasKey("transparent_bg") {
		cfg.TransparentBG = boolOrWarn(log, "transparent_bg", sec, cfg.TransparentBG)
	}
	if sec.HasKey("slideshow_seconds") {
		cfg.SlideshowSeconds = intOrWarn(log, "slideshow_seconds", sec, cfg.SlideshowSeconds)
	}

	return cfg, nil
}

func warn(log logging.Logger, key, value string) {
	if log == nil {
		return
	}
	log.Log(logging.Warning, "invalid config value, keeping default", "key", key, "value", value)
}

func boolOrWarn(log logging.Logger, key string, sec *ini.Section, fallback bool) bool {
	v, err := sec.Key(key).Bool()
	if err != nil {
		warn(log, key, sec.Key(key).String())
		return fallback
	}
	return v
}

func intOrWarn(log logging.Logger, key string, sec *ini.Section, fallback int) int {
	v, err := sec.Key(key).Int()
	if err != nil {
		warn(log, key, sec.Key(key).String())
		return fallback
	}
	return v
}
