// Package filestore реализует локальное хранилище загружаемых изображений.
//
// Принимаются только изображения jpeg, jpg, png, gif и webp размером до 5 МБ.
// Файл сохраняется под именем из текущего времени в миллисекундах,
// наружу возвращается путь вида /uploads/<имя файла>.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedType файл не является изображением разрешённого типа.
	ErrUnsupportedType = errors.New("only images are allowed (jpeg, jpg, png, gif, webp)")
	// ErrTooLarge файл превышает максимальный допустимый размер.
	ErrTooLarge = errors.New("file exceeds maximum allowed size")
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Store сохраняет изображения в локальный каталог.
type Store struct {
	dir          string
	maxSizeBytes int64
}

// New создает Store и каталог для изображений, если его ещё нет.
func New(dir string, maxSizeBytes int64) (*Store, error) {
	const op = "filestore.New"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{dir: dir, maxSizeBytes: maxSizeBytes}, nil
}

// SaveImage проверяет тип и размер изображения, сохраняет его на диск
// и возвращает путь, по которому файл доступен снаружи.
func (s *Store) SaveImage(originalName, contentType string, size int64, r io.Reader) (string, error) {
	const op = "filestore.SaveImage"

	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%s: %w", op, ErrUnsupportedType)
	}
	if _, ok := allowedMimeTypes[contentType]; !ok {
		return "", fmt.Errorf("%s: %w", op, ErrUnsupportedType)
	}
	if size > s.maxSizeBytes {
		return "", fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = dst.Close()
	}()

	// LimitReader страхует от клиента, приславшего больше заявленного размера.
	if _, err := io.Copy(dst, io.LimitReader(r, s.maxSizeBytes+1)); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return "/uploads/" + name, nil
}

// Dir возвращает каталог, в котором хранятся изображения.
func (s *Store) Dir() string {
	return s.dir
}
