package main

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"voxfade/internal/config"
)

func smallOptions(out string) options {
	return options{
		scene: "house", mode: "region", technique: "dithered",
		minAlpha: 0.15, radius: 3,
		width: 24, height: 16, samples: 1, workers: 2, zoom: 2,
		yaw: 30, pitch: 55, distance: 14, fov: 60,
		label: true, out: out,
	}
}

func TestRunWritesPNG(t *testing.T) {
	defer config.ResetOcclusion()
	out := filepath.Join(t.TempDir(), "house.png")
	if err := run(context.Background(), smallOptions(out)); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Expected a valid PNG, got %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Errorf("Expected 48x32 after zoom, got %v", b)
	}
}

func TestRunWritesEXR(t *testing.T) {
	defer config.ResetOcclusion()
	o := smallOptions(filepath.Join(t.TempDir(), "house.exr"))
	o.mode, o.technique, o.strict = "shader", "alphablend", true
	if err := run(context.Background(), o); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	if _, err := os.Stat(o.out); err != nil {
		t.Errorf("Expected output file, got %v", err)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	defer config.ResetOcclusion()
	dir := t.TempDir()
	cases := []func(*options){
		func(o *options) { o.mode = "xray" },
		func(o *options) { o.technique = "stipple" },
		func(o *options) { o.scene = "castle" },
		func(o *options) { o.out = filepath.Join(dir, "x.jpg") },
	}
	for i, mut := range cases {
		o := smallOptions(filepath.Join(dir, "x.png"))
		mut(&o)
		if err := run(context.Background(), o); err == nil {
			t.Errorf("Case %d: expected an error", i)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	defer config.ResetOcclusion()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, smallOptions(filepath.Join(t.TempDir(), "x.png")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
