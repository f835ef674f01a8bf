package covers_test

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcrossing/internal/bookcrossing/adapters/covers"
	"bookcrossing/internal/bookcrossing/domain/entities"
	ports "bookcrossing/internal/bookcrossing/ports/services"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "cover.png", expected: "cover.png"},
		{input: "../../etc/passwd", expected: "passwd"},
		{input: `..\..\windows\system.ini`, expected: "system.ini"},
		{input: "my cover.JPG", expected: "my_cover.JPG"},
		{input: "...hidden.gif", expected: "hidden.gif"},
		{input: "обложка.png", expected: "png"},
		{input: "..", expected: ""},
		{input: "/", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, covers.SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilename_Length(t *testing.T) {
	name := strings.Repeat("a", 300) + ".png"

	clean := covers.SanitizeFilename(name)

	assert.LessOrEqual(t, len(clean), 100)
	assert.True(t, strings.HasSuffix(clean, ".png"))
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "a.JPG", "a.jpeg", "a.Gif"} {
		assert.True(t, covers.Allowed(name), name)
	}
	for _, name := range []string{"a.bmp", "a.exe", "png", "a.", "a.png.exe"} {
		assert.False(t, covers.Allowed(name), name)
	}
}

func TestFileStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("no upload", func(t *testing.T) {
		store := covers.NewFileStore(covers.Options{Dir: t.TempDir()})

		key, err := store.Save(ctx, nil)

		require.NoError(t, err)
		assert.Equal(t, entities.DefaultCover, key)
	})

	t.Run("disallowed extension", func(t *testing.T) {
		dir := t.TempDir()
		store := covers.NewFileStore(covers.Options{Dir: dir})

		key, err := store.Save(ctx, &ports.CoverUpload{Filename: "cover.bmp", Content: bytes.NewReader(pngBytes(t, 4, 4))})

		require.NoError(t, err)
		assert.Equal(t, entities.DefaultCover, key)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("not an image", func(t *testing.T) {
		store := covers.NewFileStore(covers.Options{Dir: t.TempDir()})

		key, err := store.Save(ctx, &ports.CoverUpload{Filename: "cover.png", Content: strings.NewReader("plain text")})

		require.NoError(t, err)
		assert.Equal(t, entities.DefaultCover, key)
	})

	t.Run("stores allowed image under random key", func(t *testing.T) {
		dir := t.TempDir()
		store := covers.NewFileStore(covers.Options{Dir: dir, MaxWidth: 600, MaxHeight: 900})
		data := pngBytes(t, 10, 20)

		key, err := store.Save(ctx, &ports.CoverUpload{Filename: "../My Cover.PNG", Content: bytes.NewReader(data)})

		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, "_My_Cover.PNG"))
		assert.NotContains(t, key, "/")

		stored, err := os.ReadFile(filepath.Join(dir, key))
		require.NoError(t, err)
		assert.Equal(t, data, stored)
	})

	t.Run("same name twice gives distinct keys", func(t *testing.T) {
		store := covers.NewFileStore(covers.Options{Dir: t.TempDir()})

		first, err := store.Save(ctx, &ports.CoverUpload{Filename: "c.png", Content: bytes.NewReader(pngBytes(t, 2, 2))})
		require.NoError(t, err)
		second, err := store.Save(ctx, &ports.CoverUpload{Filename: "c.png", Content: bytes.NewReader(pngBytes(t, 2, 2))})
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("downscales oversized image", func(t *testing.T) {
		dir := t.TempDir()
		store := covers.NewFileStore(covers.Options{Dir: dir, MaxWidth: 50, MaxHeight: 50})

		key, err := store.Save(ctx, &ports.CoverUpload{Filename: "big.png", Content: bytes.NewReader(pngBytes(t, 200, 100))})
		require.NoError(t, err)

		file, err := os.Open(filepath.Join(dir, key))
		require.NoError(t, err)
		defer file.Close()

		cfg, format, err := image.DecodeConfig(file)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 50, cfg.Width)
		assert.Equal(t, 25, cfg.Height)
	})

	t.Run("too large", func(t *testing.T) {
		store := covers.NewFileStore(covers.Options{Dir: t.TempDir(), MaxBytes: 10})

		_, err := store.Save(ctx, &ports.CoverUpload{Filename: "c.png", Content: bytes.NewReader(pngBytes(t, 8, 8))})

		assert.ErrorIs(t, err, covers.ErrCoverTooLarge)
	})
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes stored cover", func(t *testing.T) {
		dir := t.TempDir()
		store := covers.NewFileStore(covers.Options{Dir: dir})
		key, err := store.Save(ctx, &ports.CoverUpload{Filename: "c.png", Content: bytes.NewReader(pngBytes(t, 2, 2))})
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, key))

		_, err = os.Stat(filepath.Join(dir, key))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("default cover and missing key are no-ops", func(t *testing.T) {
		store := covers.NewFileStore(covers.Options{Dir: t.TempDir()})

		assert.NoError(t, store.Delete(ctx, entities.DefaultCover))
		assert.NoError(t, store.Delete(ctx, "missing.png"))
		assert.NoError(t, store.Delete(ctx, ""))
	})

	t.Run("keys outside the directory are rejected", func(t *testing.T) {
		dir := t.TempDir()
		outside := filepath.Join(filepath.Dir(dir), "keep.png")
		require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
		t.Cleanup(func() { _ = os.Remove(outside) })
		store := covers.NewFileStore(covers.Options{Dir: dir})

		err := store.Delete(ctx, "../keep.png")

		assert.ErrorIs(t, err, covers.ErrInvalidCoverKey)
		_, statErr := os.Stat(outside)
		assert.NoError(t, statErr)
	})
}
