package canvas

import (
	"context"
	stderrors "errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding for DirSource
	_ "image/jpeg" // register JPEG decoding for DirSource
	_ "image/png"  // register PNG decoding for DirSource
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoding for DirSource

	"github.com/go-drift/luckywheel/pkg/errors"
)

// ErrImageNotFound is returned by image sources that have no image for an id.
var ErrImageNotFound = stderrors.New("canvas: image not found")

// ImageSource loads segment images by id.
type ImageSource interface {
	Load(ctx context.Context, id string) (image.Image, error)
}

// MapSource serves images from memory.
type MapSource map[string]image.Image

// Load implements ImageSource.
func (m MapSource) Load(_ context.Context, id string) (image.Image, error) {
	img, ok := m[id]
	if !ok || img == nil {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, id)
	}
	return img, nil
}

// SourceFunc adapts a function to ImageSource.
type SourceFunc func(ctx context.Context, id string) (image.Image, error)

// Load implements ImageSource.
func (f SourceFunc) Load(ctx context.Context, id string) (image.Image, error) {
	return f(ctx, id)
}

// DirSource loads "<id><ext>" from a directory, trying each extension in
// order. PNG, JPEG, GIF and WebP files are supported.
type DirSource struct {
	Dir string
	// Exts defaults to .png, .jpg, .jpeg, .gif, .webp.
	Exts []string
}

var defaultExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Load implements ImageSource.
func (s DirSource) Load(ctx context.Context, id string) (image.Image, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, fmt.Errorf("%w: invalid id %q", ErrImageNotFound, id)
	}
	exts := s.Exts
	if len(exts) == 0 {
		exts = defaultExts
	}
	for _, ext := range exts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.Dir, id+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		img, err := gg.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("canvas: decode %s: %w", path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrImageNotFound, id, s.Dir)
}

// fit scales img down so that it fits a size x size box, keeping its
// aspect ratio. Smaller images are returned unchanged.
func fit(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}
	scale := float64(size) / math.Max(float64(w), float64(h))
	dw := max(1, int(math.Round(float64(w)*scale)))
	dh := max(1, int(math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Preload implements wheel.Preloader. Every distinct segment image id is
// loaded concurrently; a failed load is reported as an asset error and
// leaves that segment without an image. done is called once after every
// load has finished either way.
func (c *Canvas) Preload(ctx context.Context, done func()) {
	ids := make(map[string]struct{})
	for _, seg := range c.segments {
		if seg.ImageID != "" {
			ids[seg.ImageID] = struct{}{}
		}
	}
	src := c.opts.Images
	if src == nil {
		ids = nil
	}
	box := int(math.Round(c.opts.ImageSize))

	var wg sync.WaitGroup
	var mu sync.Mutex
	loaded, failed := 0, 0
	for id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer errors.Recover("canvas.Canvas.Preload")
			img, err := src.Load(ctx, id)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				Logger().Warn("image failed", "id", id, "err", err)
				errors.Report(&errors.WheelError{
					Op:   "canvas.Canvas.Preload",
					Kind: errors.KindAsset,
					Err:  err,
				})
				return
			}
			img = fit(img, box)
			c.mu.Lock()
			c.images[id] = img
			c.mu.Unlock()
			mu.Lock()
			loaded++
			mu.Unlock()
			Logger().Debug("image loaded", "id", id, "bounds", img.Bounds())
		}(id)
	}
	go func() {
		wg.Wait()
		Logger().Debug("preload settled", "loaded", loaded, "failed", failed)
		done()
	}()
}

// HasImage reports whether the image for id has been loaded.
func (c *Canvas) HasImage(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.images[id] != nil
}
