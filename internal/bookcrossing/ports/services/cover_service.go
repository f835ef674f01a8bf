package services

import (
	"context"
	"io"
)

// CoverUpload - загружаемый файл обложки.
type CoverUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CoverStore сохраняет обложки и возвращает ключ хранения.
type CoverStore interface {
	// Save возвращает entities.DefaultCover, если файл не передан или его тип не разрешен.
	Save(ctx context.Context, upload *CoverUpload) (string, error)

	// Delete удаляет сохраненную обложку. Для entities.DefaultCover и отсутствующего ключа ничего не делает.
	Delete(ctx context.Context, key string) error
}
