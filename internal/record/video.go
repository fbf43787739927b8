// Package record turns frames into artefacts for offline viewing: an MJPEG
// video of the run and a chart of material populations over time.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"entropy/internal/render"
	"entropy/internal/sims/entropy"
)

// ErrFrameSize is returned when a frame does not match the video dimensions.
var ErrFrameSize = errors.New("record: frame size changed mid-recording")

// VideoOptions controls the MJPEG encoder.
type VideoOptions struct {
	FPS        int
	Scale      int
	Every      int
	Quality    int
	Background color.RGBA
}

// DefaultVideoOptions returns options that play back at simulation speed.
func DefaultVideoOptions() VideoOptions {
	return VideoOptions{
		FPS:        30,
		Scale:      4,
		Every:      2,
		Quality:    90,
		Background: color.RGBA{R: 9, G: 9, B: 11, A: 255},
	}
}

// Video writes every Every-th frame to an MJPEG AVI file. The file is created
// on the first frame so its dimensions follow the grid.
type Video struct {
	path    string
	opts    VideoOptions
	palette []color.RGBA

	w       mjpeg.AviWriter
	fw, fh  int
	seen    int
	written int
	buf     bytes.Buffer
}

// NewVideo prepares a recorder writing to path.
func NewVideo(path string, opts VideoOptions) *Video {
	def := DefaultVideoOptions()
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}
	if opts.Every <= 0 {
		opts.Every = 1
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = def.Quality
	}
	return &Video{path: path, opts: opts, palette: entropy.Palette()}
}

// Add encodes f if it falls on the sampling interval.
func (v *Video) Add(f entropy.Frame) error {
	v.seen++
	if (v.seen-1)%v.opts.Every != 0 {
		return nil
	}
	if v.w == nil {
		w, err := mjpeg.New(v.path, int32(f.W*v.opts.Scale), int32(f.H*v.opts.Scale), int32(v.opts.FPS))
		if err != nil {
			return fmt.Errorf("record: create video: %w", err)
		}
		v.w, v.fw, v.fh = w, f.W, f.H
	}
	if f.W != v.fw || f.H != v.fh {
		return fmt.Errorf("%w: %dx%d, started at %dx%d", ErrFrameSize, f.W, f.H, v.fw, v.fh)
	}

	img := render.ScaledFrameImage(f, v.palette, v.opts.Scale, v.opts.Background)
	v.buf.Reset()
	if err := jpeg.Encode(&v.buf, img, &jpeg.Options{Quality: v.opts.Quality}); err != nil {
		return fmt.Errorf("record: encode frame: %w", err)
	}
	if err := v.w.AddFrame(v.buf.Bytes()); err != nil {
		return fmt.Errorf("record: add frame: %w", err)
	}
	v.written++
	return nil
}

// Written reports how many frames were encoded.
func (v *Video) Written() int { return v.written }

// Close finalises the file. Closing a recorder that saw no frames is a no-op.
func (v *Video) Close() error {
	if v.w == nil {
		return nil
	}
	return v.w.Close()
}
