package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/maekabu-office/internal/config"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrBucketRequired バケット名未指定
var ErrBucketRequired = errors.New("storage bucket is required")

// ObjectStore オブジェクトストレージ
type ObjectStore interface {
	// Put オブジェクトを書き込み、公開 URL を返す
	Put(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error)
	PublicURL(bucket, object string) string
}

// New 設定に応じたストアを返す
func New(cfg config.StorageConfig) ObjectStore {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "memory":
		return NewMemoryStore(cfg.PublicBaseURL)
	default:
		return NewGCSStore(cfg.PublicBaseURL, cfg.CredentialsJSON)
	}
}

// GCSStore Google Cloud Storage 実装
type GCSStore struct {
	baseURL         string
	credentialsJSON string

	once      sync.Once
	client    *gcs.Client
	clientErr error
}

// NewGCSStore クライアントは初回書き込み時に生成する
func NewGCSStore(publicBaseURL, credentialsJSON string) *GCSStore {
	return &GCSStore{
		baseURL:         publicBaseURL,
		credentialsJSON: credentialsJSON,
	}
}

func (s *GCSStore) getClient(ctx context.Context) (*gcs.Client, error) {
	s.once.Do(func() {
		// 明示的な JSON が無ければ ADC（サービスアカウント / GOOGLE_APPLICATION_CREDENTIALS）を使う
		if creds := strings.TrimSpace(s.credentialsJSON); creds != "" {
			s.client, s.clientErr = gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(creds)))
			return
		}
		s.client, s.clientErr = gcs.NewClient(ctx)
	})
	return s.client, s.clientErr
}

// Put オブジェクトを書き込む
func (s *GCSStore) Put(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error) {
	if strings.TrimSpace(bucket) == "" {
		return "", ErrBucketRequired
	}
	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("gcs client: %w", err)
	}

	wc := client.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := io.Copy(wc, body); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return s.PublicURL(bucket, object), nil
}

// PublicURL 公開 URL
func (s *GCSStore) PublicURL(bucket, object string) string {
	return publicURL(s.baseURL, bucket, object)
}

// Close クライアントを閉じる
func (s *GCSStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func publicURL(baseURL, bucket, object string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, strings.TrimLeft(object, "/"))
}
