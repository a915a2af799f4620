package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// MemoryObject 保存済みオブジェクト
type MemoryObject struct {
	ContentType string
	Data        []byte
}

// MemoryStore プロセス内ストア（ローカル開発・テスト用）
type MemoryStore struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]MemoryObject
}

// NewMemoryStore メモリストアを生成する
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{baseURL: publicBaseURL, objects: make(map[string]MemoryObject)}
}

// Put オブジェクトを保存する
func (s *MemoryStore) Put(ctx context.Context, bucket, object, contentType string, body io.Reader) (string, error) {
	if strings.TrimSpace(bucket) == "" {
		return "", ErrBucketRequired
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.objects[bucket+"/"+object] = MemoryObject{ContentType: contentType, Data: buf.Bytes()}
	s.mu.Unlock()
	return s.PublicURL(bucket, object), nil
}

// PublicURL 公開 URL
func (s *MemoryStore) PublicURL(bucket, object string) string {
	return publicURL(s.baseURL, bucket, object)
}

// Get 保存済みオブジェクトを取得する
func (s *MemoryStore) Get(bucket, object string) (MemoryObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[bucket+"/"+object]
	return obj, ok
}

// Len 保存数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
