package seed

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResolve(t *testing.T) {
	manual := int64(1234)
	img := solid(10, 10, color.NRGBA{R: 200, A: 255})

	tests := []struct {
		name    string
		src     Source
		opts    Options
		want    *int64
		wantErr error
	}{
		{name: "manual", opts: Options{Mode: ModeManual, Value: &manual}, want: &manual},
		{name: "manual without value", opts: Options{Mode: ModeManual}, wantErr: ErrMissingInput},
		{name: "content without image", opts: Options{Mode: ModeContent}, wantErr: ErrMissingInput},
		{name: "filepath without path", opts: Options{Mode: ModeFilepath}, wantErr: ErrMissingInput},
		{name: "content", src: Source{Image: img}, opts: Options{Mode: ModeContent}},
		{name: "default is content", src: Source{Image: img}},
		{name: "random", opts: Options{Mode: ModeRandom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if tt.want != nil && got != *tt.want {
				t.Errorf("Resolve() = %d, want %d", got, *tt.want)
			}
		})
	}

	if _, err := Resolve(Source{}, Options{Mode: "dice"}); err == nil {
		t.Error("Resolve() with an unknown mode should fail")
	}
}

func TestContentSeed(t *testing.T) {
	a := solid(20, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	b := solid(20, 20, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	c := solid(20, 20, color.NRGBA{R: 11, G: 20, B: 30, A: 255})
	d := solid(20, 21, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	if ContentSeed(a) != ContentSeed(b) {
		t.Error("identical images should give identical seeds")
	}
	if ContentSeed(a) == ContentSeed(c) {
		t.Error("different pixels should give different seeds")
	}
	if ContentSeed(a) == ContentSeed(d) {
		t.Error("different sizes should give different seeds")
	}
}

func TestPathSeed(t *testing.T) {
	if PathSeed("photo.png") != PathSeed("./photo.png") {
		t.Error("relative paths to the same file should give the same seed")
	}
	if PathSeed("photo.png") == PathSeed("other.png") {
		t.Error("different paths should give different seeds")
	}
	if PathSeed("https://example.com/a.png") == PathSeed("https://example.com/b.png") {
		t.Error("different URLs should give different seeds")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for range 10 {
		if a.Int63() != b.Int63() {
			t.Fatal("generators with the same seed diverged")
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range ValidModes() {
		if got, err := ParseMode(string(m)); err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("dice"); err == nil {
		t.Error("ParseMode(dice) should fail")
	}
}
