// Package covers сохраняет обложки книг на диск.
package covers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"bookcrossing/internal/bookcrossing/domain/entities"
	ports "bookcrossing/internal/bookcrossing/ports/services"
	"bookcrossing/pkg/logger"
)

const (
	methodSave          = "Save"
	msgDefaultCoverUsed = "using default cover"
	msgCoverDownscaled  = "cover downscaled"
	msgCoverStored      = "cover stored"

	errCtxReadingCover = "reading cover"
	errCtxWritingCover = "writing cover"
	errCtxEncodeCover  = "encoding cover"
	errCtxDeleteCover  = "deleting cover"

	jpegQuality = 85
)

// Ошибки хранилища обложек.
var (
	ErrCoverTooLarge   = errors.New("cover file is too large")
	ErrInvalidCoverKey = errors.New("invalid cover key")
)

// Options задает параметры хранилища обложек.
type Options struct {
	Dir       string
	MaxWidth  int
	MaxHeight int
	// MaxBytes ограничивает размер читаемого файла. 0 - без ограничения.
	MaxBytes int64
}

// FileStore хранит обложки в каталоге на диске.
type FileStore struct {
	opts Options
}

// NewFileStore создает хранилище обложек.
func NewFileStore(opts Options) ports.CoverStore {
	return &FileStore{opts: opts}
}

// Save сохраняет обложку и возвращает ее ключ. Для отсутствующего файла,
// неразрешенного расширения или нечитаемого изображения возвращается entities.DefaultCover.
func (s *FileStore) Save(ctx context.Context, upload *ports.CoverUpload) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSave))

	if upload == nil || upload.Content == nil || upload.Filename == "" {
		return entities.DefaultCover, nil
	}

	name := SanitizeFilename(upload.Filename)
	if name == "" || !Allowed(name) {
		log.Debug(ctx, msgDefaultCoverUsed, zap.String("reason", "extension not allowed"))
		return entities.DefaultCover, nil
	}

	data, err := s.read(upload.Content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtxReadingCover, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Debug(ctx, msgDefaultCoverUsed, zap.String("reason", "not an image"), zap.Error(err))
		return entities.DefaultCover, nil
	}

	if s.exceedsBounds(cfg.Width, cfg.Height) {
		data, err = s.downscale(data, Extension(name))
		if err != nil {
			log.Debug(ctx, msgDefaultCoverUsed, zap.String("reason", "decode failed"), zap.Error(err))
			return entities.DefaultCover, nil
		}
		log.Debug(ctx, msgCoverDownscaled, zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
	}

	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		log.Error(ctx, errCtxWritingCover, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxWritingCover, err)
	}

	key := uuid.NewString() + "_" + name
	if err := os.WriteFile(filepath.Join(s.opts.Dir, key), data, 0o644); err != nil {
		log.Error(ctx, errCtxWritingCover, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxWritingCover, err)
	}

	log.Debug(ctx, msgCoverStored, zap.String("key", key))
	return key, nil
}

// Delete удаляет файл обложки по ключу, выданному Save.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if key == "" || key == entities.DefaultCover {
		return nil
	}
	if key != filepath.Base(key) || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%s: %w", errCtxDeleteCover, ErrInvalidCoverKey)
	}

	if err := os.Remove(filepath.Join(s.opts.Dir, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Log(ctx).Error(ctx, errCtxDeleteCover, zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeleteCover, err)
	}
	return nil
}

func (s *FileStore) read(r io.Reader) ([]byte, error) {
	if s.opts.MaxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.opts.MaxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return nil, ErrCoverTooLarge
	}
	return data, nil
}

func (s *FileStore) exceedsBounds(width, height int) bool {
	return (s.opts.MaxWidth > 0 && width > s.opts.MaxWidth) ||
		(s.opts.MaxHeight > 0 && height > s.opts.MaxHeight)
}

// fit возвращает размеры, вписанные в рамку MaxWidth x MaxHeight с сохранением пропорций.
func (s *FileStore) fit(width, height int) (int, int) {
	scale := 1.0
	if s.opts.MaxWidth > 0 && width > s.opts.MaxWidth {
		scale = float64(s.opts.MaxWidth) / float64(width)
	}
	if s.opts.MaxHeight > 0 && height > s.opts.MaxHeight {
		if hs := float64(s.opts.MaxHeight) / float64(height); hs < scale {
			scale = hs
		}
	}

	w := max(int(float64(width)*scale), 1)
	h := max(int(float64(height)*scale), 1)
	return w, h
}

func (s *FileStore) downscale(data []byte, ext string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := s.fit(bounds.Dx(), bounds.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch ext {
	case "png":
		err = png.Encode(&buf, dst)
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxEncodeCover, err)
	}

	return buf.Bytes(), nil
}
