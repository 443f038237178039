package imageio

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/swayview/swayview/internal/pixmap"
	"github.com/swayview/swayview/internal/render"
)

// Frame is a single decoded pixmap plus its display duration; a
// duration of 0 marks a static (non-animated) frame.
type Frame struct {
	Pix      *pixmap.Pixmap
	Duration time.Duration
}

// InfoEntry is one ordered (key, value) metadata pair.
type InfoEntry struct {
	Key, Value string
}

// ResourceMask selects which sub-resources Clear/Free release.
type ResourceMask uint8

const (
	MaskFrames ResourceMask = 1 << iota
	MaskThumbnail
	MaskInfo
	MaskAll = MaskFrames | MaskThumbnail | MaskInfo
)

// Image is a logical image identified by an opaque source string, per
// section 3's data model.
type Image struct {
	Source    string
	Name      string
	ParentDir string
	Format    string
	FileSize  int64
	FileTime  time.Time

	Alpha     bool
	Frames    []Frame
	Thumbnail *pixmap.Pixmap
	Info      []InfoEntry
	Hooks     Hooks

	// Index is this image's position in its owning ImageList; assigned
	// and mutated only by that list's reindex pass.
	Index int

	// Failed marks an entry that has already failed to decode once, so
	// future traversal can skip it without retrying the I/O.
	Failed bool
}

// Create returns a shell Image with only source/name/parent_dir set,
// per section 4.3's image_create.
func Create(source string) *Image {
	name := path.Base(source)
	parent := ""
	if i := strings.LastIndexByte(source, '/'); i >= 0 {
		parent = source[:i]
	}
	return &Image{Source: source, Name: name, ParentDir: parent}
}

// openSource resolves an Image's source string into its raw bytes,
// recognizing the stdin:// and exec://<cmd> pseudo-schemes named in
// section 6 alongside plain filesystem paths.
func openSource(source string) ([]byte, error) {
	switch {
	case source == "stdin://":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		return b, nil
	case strings.HasPrefix(source, "exec://"):
		cmdline := strings.TrimPrefix(source, "exec://")
		cmd := exec.Command("sh", "-c", cmdline)
		out, err := cmd.Output()
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		return out, nil
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
		return b, nil
	}
}

// Load invokes the decoder registry against img.Source, trying
// decoders in priority order and stopping at the first one whose Probe
// returns true. Outcomes are success, unsupported (no decoder claimed
// the stream), format_error (claimed but invalid), or io_error.
func Load(img *Image, reg *Registry) (Outcome, error) {
	data, err := openSource(img.Source)
	if err != nil {
		img.Failed = true
		return IOError, err
	}

	if fi, statErr := os.Stat(img.Source); statErr == nil {
		img.FileSize = fi.Size()
		img.FileTime = fi.ModTime()
	}

	for _, d := range reg.Decoders() {
		if !d.Probe(bytes.NewReader(data)) {
			continue
		}
		err := d.Decode(bytes.NewReader(data), img)
		if err != nil {
			img.Failed = true
			outcome := Classify(err)
			return outcome, err
		}
		if hd, ok := d.(HookedDecoder); ok {
			img.Hooks = hd.Hooks()
		}
		for _, f := range img.Frames {
			if f.Pix != nil && f.Pix.Format == pixmap.ARGBFormat {
				img.Alpha = true
				break
			}
		}
		return Success, nil
	}
	img.Failed = true
	return Unsupported, errors.WithStack(ErrUnsupported)
}

// Attach move-merges src into dst: frames, thumbnail, info, format, and
// parent_dir are transferred only where dst is empty. Frames, thumbnail
// and info that are moved are cleared from src; those dst already had
// stay with src.
func Attach(dst, src *Image) {
	if len(dst.Frames) == 0 {
		dst.Frames = src.Frames
		src.Frames = nil
	}
	if dst.Thumbnail == nil {
		dst.Thumbnail = src.Thumbnail
		src.Thumbnail = nil
	}
	if len(dst.Info) == 0 {
		dst.Info = src.Info
		src.Info = nil
	}
	if dst.Format == "" {
		dst.Format = src.Format
	}
	if dst.ParentDir == "" {
		dst.ParentDir = src.ParentDir
	}
	if !dst.Alpha {
		dst.Alpha = src.Alpha
	}
}

// Clear releases the sub-resources selected by mask, freeing any owned
// pixmap buffers.
func (img *Image) Clear(mask ResourceMask) {
	if mask&MaskFrames != 0 {
		for i := range img.Frames {
			if img.Frames[i].Pix != nil {
				img.Frames[i].Pix.Free()
			}
		}
		img.Frames = nil
		img.Alpha = false
	}
	if mask&MaskThumbnail != 0 && img.Thumbnail != nil {
		img.Thumbnail.Free()
		img.Thumbnail = nil
	}
	if mask&MaskInfo != 0 {
		img.Info = nil
	}
}

// Free is an alias of Clear: section 4.3 names both image_clear and
// image_free as releasing selected sub-resources.
func (img *Image) Free(mask ResourceMask) {
	img.Clear(mask)
}

// Export writes frame index `frame` to path as a PNG, the only encoder
// this package links (section 1's Non-goals).
func Export(img *Image, frame int, path string) error {
	if frame < 0 || frame >= len(img.Frames) {
		return errors.New("imageio: frame index out of range")
	}
	p := img.Frames[frame].Pix
	if p == nil {
		return errors.New("imageio: frame has no pixmap")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	defer f.Close()
	return encodePNG(f, p)
}

// ThumbCreate scales frame 0 into img.Thumbnail per section 4.3: fill
// mode scales the image to cover a size x size pixmap filled with bg,
// centered and cropped to it; fit mode produces a scaled_w x scaled_h
// pixmap with no letterboxing.
func ThumbCreate(img *Image, size int, fill bool, bg pixmap.Color, filter render.Filter) error {
	if len(img.Frames) == 0 || img.Frames[0].Pix == nil {
		return errors.New("imageio: no frame to thumbnail")
	}
	src := img.Frames[0].Pix
	sw := float64(size) / float64(src.Width)
	sh := float64(size) / float64(src.Height)
	scale := sh
	if fill {
		if sw > sh {
			scale = sw
		}
	} else {
		if sw < sh {
			scale = sw
		}
	}

	if !fill {
		w := int(float64(src.Width) * scale)
		h := int(float64(src.Height) * scale)
		out, err := pixmap.New(w, h, src.Format)
		if err != nil {
			return err
		}
		render.Render(src, out, 0, 0, scale, filter, false)
		img.Thumbnail = out
		return nil
	}

	out, err := pixmap.New(size, size, pixmap.XRGBFormat)
	if err != nil {
		return err
	}
	out.Fill(0, 0, size, size, bg)
	scaledW := int(float64(src.Width) * scale)
	scaledH := int(float64(src.Height) * scale)
	ox := (size - scaledW) / 2
	oy := (size - scaledH) / 2
	render.Render(src, out, ox, oy, scale, filter, false)
	img.Thumbnail = out
	return nil
}

// ThumbSave writes img.Thumbnail to w as a PNG for persistence across
// runs.
func ThumbSave(img *Image, w io.Writer) error {
	if img.Thumbnail == nil {
		return errors.New("imageio: no thumbnail to save")
	}
	return encodePNG(w, img.Thumbnail)
}

// ThumbLoad reads a PNG thumbnail from r into img.Thumbnail.
func ThumbLoad(img *Image, r io.Reader) error {
	cfg, err := png.Decode(r)
	if err != nil {
		return errors.Wrap(ErrFormatError, err.Error())
	}
	bounds := cfg.Bounds()
	p, err := pixmap.New(bounds.Dx(), bounds.Dy(), pixmap.ARGBFormat)
	if err != nil {
		return err
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r16, g16, b16, a16 := cfg.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			p.Set(x, y, pixmap.ARGB(uint8(a16>>8), uint8(r16>>8), uint8(g16>>8), uint8(b16>>8)))
		}
	}
	img.Thumbnail = p
	return nil
}

// FlipVertical flips every frame in place, dispatching to a decoder
// hook when present (vector sources must re-rasterize).
func FlipVertical(img *Image) error {
	if img.Hooks.Flip != nil {
		return img.Hooks.Flip(img, true)
	}
	for _, f := range img.Frames {
		if f.Pix != nil {
			f.Pix.FlipVertical()
		}
	}
	return nil
}

// FlipHorizontal is FlipVertical's horizontal counterpart.
func FlipHorizontal(img *Image) error {
	if img.Hooks.Flip != nil {
		return img.Hooks.Flip(img, false)
	}
	for _, f := range img.Frames {
		if f.Pix != nil {
			f.Pix.FlipHorizontal()
		}
	}
	return nil
}

// Rotate rotates every frame by degrees (one of 90, 180, 270),
// dispatching to a decoder hook when present.
func Rotate(img *Image, degrees int) error {
	if img.Hooks.Rotate != nil {
		return img.Hooks.Rotate(img, degrees)
	}
	for i := range img.Frames {
		if img.Frames[i].Pix == nil {
			continue
		}
		if err := img.Frames[i].Pix.Rotate(degrees); err != nil {
			return err
		}
	}
	return nil
}

func encodePNG(w io.Writer, p *pixmap.Pixmap) error {
	return png.Encode(w, pixmapToNRGBA(p))
}
