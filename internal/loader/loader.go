// Package loader reads and decodes the image shown by the viewer. It tries
// the original and remote locations of a source in turn, falling back to the
// preview, and reports the natural image size once decoded.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/elektrokombinacija/zoomview/internal/core"
)

var (
	ErrNoSource          = errors.New("image source has no location")
	ErrRemoteUnsupported = errors.New("remote locations are not fetched")
	ErrNotImage          = errors.New("content is not a supported image")
	ErrTooLarge          = errors.New("image exceeds the pixel budget")
)

// DefaultMaxPixels bounds the decoded size of a single image, about 16k x 8k.
const DefaultMaxPixels = 128 << 20

// Stage tells which kind of result is being delivered.
type Stage int

const (
	StagePreview Stage = iota
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StagePreview:
		return "preview"
	case StageFinal:
		return "final"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Result is a decoded image ready for painting.
type Result struct {
	Stage    Stage
	Location string
	MIME     string
	// Image may be downscaled to fit the texture limit.
	Image image.Image
	// Dimensions is the natural size of the decoded image.
	Dimensions core.ImageDimensions
}

// Loader decodes images from local paths and file URLs.
type Loader struct {
	// MaxTextureSize caps the longest side of decoded textures, 0 for no limit.
	MaxTextureSize int
	// MaxPixels rejects images whose width*height exceeds it before they
	// are decoded, 0 for no limit.
	MaxPixels int64

	log *zap.Logger
}

// New creates a loader.
func New(maxTextureSize int, log *zap.Logger) *Loader {
	return &Loader{MaxTextureSize: maxTextureSize, MaxPixels: DefaultMaxPixels, log: log}
}

// Decode reads and decodes the image at a single location.
func (l *Loader) Decode(ctx context.Context, location string) (*Result, error) {
	path, err := resolve(location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read image: %w", err)
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("unable to detect content type: %w", err)
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%w (detected %q)", ErrNotImage, kind.MIME.Value)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s header: %w", kind.MIME.Value, err)
	}
	if l.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > l.MaxPixels {
		return nil, fmt.Errorf("%w (%dx%d)", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", kind.MIME.Value, err)
	}
	b := img.Bounds()
	dims := core.ImageDimensions{Width: float64(b.Dx()), Height: float64(b.Dy())}

	if m := l.MaxTextureSize; m > 0 && (b.Dx() > m || b.Dy() > m) {
		img = imaging.Fit(img, m, m, imaging.Lanczos)
		l.log.Debug("Downscaled texture",
			zap.String("location", location),
			zap.Stringer("natural", dims),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
	}

	return &Result{
		Stage:      StageFinal,
		Location:   location,
		MIME:       kind.MIME.Value,
		Image:      img,
		Dimensions: dims,
	}, nil
}

// Load decodes the full image of src, falling back from the original
// location to the remote one and finally to the preview.
func (l *Loader) Load(ctx context.Context, src core.ImageSource) (*Result, error) {
	locations := candidates(src.URL, src.RemoteURL, src.PreviewURL)
	if len(locations) == 0 {
		return nil, ErrNoSource
	}

	var errs error
	for _, loc := range locations {
		res, err := l.Decode(ctx, loc)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		l.log.Debug("Image location failed", zap.String("location", loc), zap.Error(err))
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", loc, err))
	}
	return nil, errs
}

// Update is delivered by Start for every stage.
type Update struct {
	Result *Result
	Err    error
}

// Start loads src in the background. The preview, when present, is
// delivered first, then the final result or error. notify is called
// after each delivery so the UI can wake up; the channel is closed when
// loading is done.
func (l *Loader) Start(ctx context.Context, src core.ImageSource, notify func()) <-chan Update {
	ch := make(chan Update, 2)
	go func() {
		defer close(ch)
		send := func(u Update) {
			ch <- u
			if notify != nil {
				notify()
			}
		}

		var preview *Result
		full := src
		if src.PreviewURL != "" && (src.URL != "" || src.RemoteURL != "") {
			// The preview is tried once here and not again as a fallback.
			full.PreviewURL = ""
			if res, err := l.Decode(ctx, src.PreviewURL); err == nil {
				res.Stage = StagePreview
				preview = res
				send(Update{Result: res})
			} else {
				l.log.Debug("Preview unavailable", zap.String("location", src.PreviewURL), zap.Error(err))
			}
		}

		res, err := l.Load(ctx, full)
		if err != nil && preview != nil && ctx.Err() == nil {
			l.log.Warn("Full image unavailable, keeping preview", zap.Error(err))
			final := *preview
			final.Stage = StageFinal
			send(Update{Result: &final})
			return
		}
		if err != nil {
			send(Update{Err: err})
			return
		}
		send(Update{Result: res})
	}()
	return ch
}

// resolve turns a location into a local path.
func resolve(location string) (string, error) {
	if location == "" {
		return "", ErrNoSource
	}
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain path; single letter schemes are windows drive letters.
		return location, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		if u.Path == "" {
			return u.Opaque, nil
		}
		return u.Path, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrRemoteUnsupported, location)
	}
}

func candidates(locations ...string) []string {
	var out []string
	for _, loc := range locations {
		if loc == "" {
			continue
		}
		dup := false
		for _, o := range out {
			if o == loc {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, loc)
		}
	}
	return out
}
