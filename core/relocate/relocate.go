package relocate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"catalog-export/core/storage"

	"github.com/anacrolix/torrent/metainfo"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidTorrent is returned when a .torrent payload is not a valid metainfo file.
	ErrInvalidTorrent = errors.New("invalid torrent payload")
	// ErrDownload is returned when the source of a media reference cannot be fetched.
	ErrDownload = errors.New("failed to download source media")
)

const defaultMaxBytes = 64 << 20

// Relocator copies a media reference into the asset store.
type Relocator interface {
	// Relocate stores the content of sourceURL at destinationPath and returns the
	// long-lived URL. References that cannot be relocated are returned unchanged.
	Relocate(ctx context.Context, destinationPath, sourceURL string) (string, error)
}

// Store relocates media into a MinIO/S3 bucket.
type Store struct {
	client   storage.Client
	cfg      storage.Config
	http     *http.Client
	log      *zap.Logger
	maxBytes int64
	group    singleflight.Group
}

// NewStore creates a Store uploading into cfg.Bucket.
func NewStore(client storage.Client, cfg storage.Config, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		client:   client,
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout() * 4},
		log:      log,
		maxBytes: defaultMaxBytes,
	}
}

// WithHTTPClient replaces the client used to download sources.
func (s *Store) WithHTTPClient(c *http.Client) *Store {
	s.http = c
	return s
}

func (s *Store) Relocate(ctx context.Context, destinationPath, sourceURL string) (string, error) {
	if !IsRemote(sourceURL) || destinationPath == "" {
		return sourceURL, nil
	}
	if s.isPublic(sourceURL) {
		return sourceURL, nil
	}

	v, err, _ := s.group.Do(destinationPath, func() (any, error) {
		return s.relocate(ctx, destinationPath, sourceURL)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Store) relocate(ctx context.Context, key, sourceURL string) (string, error) {
	exists, err := storage.Exists(ctx, s.client, s.cfg.Bucket, key)
	if err != nil {
		return "", err
	}
	if exists {
		s.log.Debug("Media already relocated", zap.String("key", key))
		return storage.PublicURL(s.cfg, key), nil
	}

	start := time.Now()
	data, contentType, err := s.download(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(path.Ext(key), ".torrent") {
		if err := validateTorrent(data); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidTorrent, sourceURL, err)
		}
		contentType = "application/x-bittorrent"
	}

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Debug("Media relocated",
		zap.String("key", key),
		zap.String("source", sourceURL),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))

	return storage.PublicURL(s.cfg, key), nil
}

func (s *Store) download(ctx context.Context, sourceURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("%w: %s returned status %d", ErrDownload, sourceURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, "", fmt.Errorf("%w: %s exceeds %d bytes", ErrDownload, sourceURL, s.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(req.URL.Path))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// isPublic reports whether ref already points into the asset store.
func (s *Store) isPublic(ref string) bool {
	return strings.HasPrefix(ref, storage.PublicURL(s.cfg, ""))
}

func validateTorrent(data []byte) error {
	mi, err := metainfo.Load(bytes.NewReader(data))
	if err != nil {
		return err
	}
	info, err := mi.UnmarshalInfo()
	if err != nil {
		return err
	}
	if info.Name == "" && len(info.Files) == 0 {
		return errors.New("empty info dictionary")
	}
	return nil
}
