package screenshot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromPixelsFlipsRows(t *testing.T) {
	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); b == 0 || r != 0 {
		t.Errorf("top pixel should be blue, got r=%d b=%d", r, b)
	}
	if r, _, b, _ := img.At(0, 1).RGBA(); r == 0 || b != 0 {
		t.Errorf("bottom pixel should be red, got r=%d b=%d", r, b)
	}

	if _, err := FromPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	c := New(dir, "fractal")
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	pixels := make([]byte, 4*3*2)
	first, err := c.Save(pixels, 3, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := c.Save(pixels, 3, 2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if want := filepath.Join(dir, "fractal_2026-01-02_03-04-05_001.png"); first != want {
		t.Errorf("first = %s, want %s", first, want)
	}
	if first == second {
		t.Error("screenshots in the same second must not overwrite each other")
	}

	f, err := os.Open(second)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 3x2", b)
	}
}
