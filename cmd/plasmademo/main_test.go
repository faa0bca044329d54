package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(*testing.T, demo)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, d demo) {
				if d.width != 640 || d.height != 480 || d.frames != 120 || d.backend != "noop" {
					t.Errorf("unexpected defaults %+v", d)
				}
			},
		},
		{
			name: "overrides",
			args: []string{"-width", "32", "-height", "16", "-frames", "5", "-inflight", "2", "-v"},
			check: func(t *testing.T, d demo) {
				if d.width != 32 || d.height != 16 || d.frames != 5 || d.inFlight != 2 || !d.verbose {
					t.Errorf("flags not applied: %+v", d)
				}
			},
		},
		{name: "negative frames", args: []string{"-frames", "-1"}, wantErr: true},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d demo
			err := d.parse(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parse(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestRunNoop(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")

	var d demo
	if err := d.parse([]string{"-width", "32", "-height", "24", "-frames", "8", "-q", "-output", out}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var log bytes.Buffer
	if err := d.run(context.Background(), &log); err != nil {
		t.Fatalf("run failed: %v\n%s", err, log.String())
	}
	if !strings.Contains(log.String(), "frames=8") {
		t.Errorf("log does not report 8 frames:\n%s", log.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 32, 24) {
		t.Errorf("snapshot bounds = %v, want 32x24", got)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		d    demo
	}{
		{"unknown backend", demo{width: 8, height: 8, frames: 1, samples: 4, backend: "metal", quiet: true}},
		{"bad samples", demo{width: 8, height: 8, frames: 1, samples: 3, backend: "noop", quiet: true}},
		{"missing config", demo{width: 8, height: 8, frames: 1, samples: 4, backend: "noop", config: "nope.yaml", quiet: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			if err := tt.d.run(context.Background(), &log); err == nil {
				t.Error("run succeeded, want error")
			}
		})
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	dir := t.TempDir()

	tests := []struct {
		name   string
		decode func(*os.File) (image.Image, error)
	}{
		{"out.png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{"out.BMP", func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := saveImage(path, img); err != nil {
				t.Fatalf("saveImage failed: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer f.Close()
			got, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			r, g, b, _ := got.At(1, 1).RGBA()
			if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
				t.Errorf("pixel = (%d, %d, %d), want (200, 100, 50)", r>>8, g>>8, b>>8)
			}
		})
	}

	if err := saveImage(filepath.Join(dir, "missing", "x.png"), img); err == nil {
		t.Error("saveImage into missing directory succeeded")
	}
}
