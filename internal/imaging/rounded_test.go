package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// gradient returns an opaque image whose pixels differ by position.
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	return img
}

func TestEffectiveRadius(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		radius  *int
		want    int
		wantErr bool
	}{
		{name: "derived from short side", w: 200, h: 100, want: 25},
		{name: "square", w: 400, h: 400, want: 100},
		{name: "tiny image", w: 3, h: 3, want: 0},
		{name: "explicit", w: 200, h: 100, radius: intPtr(50), want: 50},
		{name: "zero", w: 200, h: 100, radius: intPtr(0), want: 0},
		{name: "negative", w: 200, h: 100, radius: intPtr(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectiveRadius(image.Rect(0, 0, tt.w, tt.h), tt.radius)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNegativeRadius))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundedMask_ZeroRadiusIsFullRectangle(t *testing.T) {
	mask := RoundedMask(20, 10, 0)

	for _, a := range mask.Pix {
		require.Equal(t, uint8(0xff), a)
	}
}

func TestRoundedMask_Shape(t *testing.T) {
	mask := RoundedMask(200, 100, 25)

	for _, p := range []image.Point{{0, 0}, {199, 0}, {0, 99}, {199, 99}, {3, 3}} {
		assert.Equal(t, uint8(0), mask.AlphaAt(p.X, p.Y).A, "corner %v", p)
	}
	for _, p := range []image.Point{{100, 50}, {0, 50}, {199, 50}, {100, 0}, {100, 99}, {25, 25}} {
		assert.Equal(t, uint8(0xff), mask.AlphaAt(p.X, p.Y).A, "inside %v", p)
	}

	for _, a := range mask.Pix {
		if a != 0 && a != 0xff {
			t.Fatalf("mask has partial value %d", a)
		}
	}
}

func TestRoundedMask_CornersMirror(t *testing.T) {
	tests := []struct {
		name    string
		w, h, r int
	}{
		{name: "circle", w: 100, h: 100, r: 50},
		{name: "square", w: 400, h: 400, r: 100},
		{name: "odd wide", w: 201, h: 77, r: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := RoundedMask(tt.w, tt.h, tt.r)

			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					a := mask.AlphaAt(x, y).A
					require.Equal(t, a, mask.AlphaAt(tt.w-1-x, y).A, "horizontal mirror of (%d,%d)", x, y)
					require.Equal(t, a, mask.AlphaAt(x, tt.h-1-y).A, "vertical mirror of (%d,%d)", x, y)
					require.Equal(t, a, mask.AlphaAt(tt.w-1-x, tt.h-1-y).A, "diagonal mirror of (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestRoundedMask_Empty(t *testing.T) {
	mask := RoundedMask(0, 0, 10)
	assert.Empty(t, mask.Pix)
}

func TestRound(t *testing.T) {
	src := gradient(400, 400)

	out, err := Round(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())

	assert.Equal(t, uint8(0), out.NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), out.NRGBAAt(399, 399).A)

	centre := out.NRGBAAt(200, 200)
	want := src.RGBAAt(200, 200)
	assert.Equal(t, color.NRGBA{R: want.R, G: want.G, B: want.B, A: 0xff}, centre)
}

func TestRound_OffsetBounds(t *testing.T) {
	src := gradient(60, 60).SubImage(image.Rect(10, 10, 50, 50))

	out, err := Round(src, intPtr(0))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 40), out.Bounds())
	assert.Equal(t, uint8(10), out.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(0xff), out.NRGBAAt(0, 0).A)
}

func TestRound_NegativeRadius(t *testing.T) {
	_, err := Round(gradient(10, 10), intPtr(-5))
	assert.ErrorIs(t, err, ErrNegativeRadius)
}

func TestMakeRounded(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	output := filepath.Join(dir, "out.png")

	src := gradient(400, 400)
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	require.NoError(t, MakeRounded(input, output, nil))

	rf, err := os.Open(output)
	require.NoError(t, err)
	defer rf.Close()

	decoded, err := png.Decode(rf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 400), decoded.Bounds())

	_, _, _, a := decoded.At(0, 0).RGBA()
	assert.Zero(t, a)

	got := color.NRGBAModel.Convert(decoded.At(200, 200)).(color.NRGBA)
	want := src.RGBAAt(200, 200)
	assert.Equal(t, color.NRGBA{R: want.R, G: want.G, B: want.B, A: 0xff}, got)
}

func TestMakeRounded_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		err := MakeRounded(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.png"), nil)
		assert.ErrorContains(t, err, "failed to open image")
	})

	t.Run("undecodable input", func(t *testing.T) {
		input := filepath.Join(dir, "bad.png")
		require.NoError(t, os.WriteFile(input, []byte("not a valid image"), 0o644))

		err := MakeRounded(input, filepath.Join(dir, "out.png"), nil)
		assert.ErrorContains(t, err, "failed to decode image")
	})
}
