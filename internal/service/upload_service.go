package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/logger"
	"github.com/maekabu-office/internal/storage"

	"github.com/google/uuid"
)

const defaultUploadExtension = "pdf"

// UploadResult アップロード結果
type UploadResult struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// UploadService 支払請求書ファイルのアップロード
type UploadService struct {
	cfg   config.StorageConfig
	store storage.ObjectStore
	now   func() time.Time
}

// NewUploadService アップロードサービスを生成する
func NewUploadService(cfg config.StorageConfig, store storage.ObjectStore) *UploadService {
	return &UploadService{cfg: cfg, store: store, now: time.Now}
}

// SaveFile ファイルを検証してバケットへ書き込み、公開 URL を返す
func (s *UploadService) SaveFile(ctx context.Context, file *multipart.FileHeader) (*UploadResult, error) {
	if file == nil {
		return nil, ErrUploadNoFile
	}
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: size %d exceeds %d bytes", ErrUploadInvalid, file.Size, s.cfg.MaxSize)
	}

	ext := uploadExtension(file.Filename)
	if len(s.cfg.AllowedExtensions) > 0 && !isAllowedExtension("."+ext, s.cfg.AllowedExtensions) {
		return nil, fmt.Errorf("%w: extension .%s", ErrUploadInvalid, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 先頭 512 バイトで MIME を判定する
	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	contentType := strings.TrimSpace(file.Header.Get("Content-Type"))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(buffer[:n])
	}

	objectName := s.objectName(ext)
	url, err := s.store.Put(ctx, s.cfg.Bucket, objectName, contentType, src)
	if err != nil {
		return nil, err
	}
	logger.Infow("upload_stored", "object", objectName, "content_type", contentType, "size", file.Size)
	return &UploadResult{FileURL: url, FileName: file.Filename}, nil
}

// objectName {unixmilli}_{random}.{ext}。元のファイル名（日本語を含む）は使わない
func (s *UploadService) objectName(ext string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s.%s", s.now().UnixMilli(), random, ext)
}

func uploadExtension(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(filename)), "."))
	if ext == "" {
		return defaultUploadExtension
	}
	return ext
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if strings.EqualFold(ext, normalized) {
			return true
		}
	}
	return false
}
