package image

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/tincture/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout for remote images.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the size of a downloaded image.
	DefaultMaxBytes = 50 * 1024 * 1024
)

// ErrImageTooLarge is returned when a remote image exceeds the download limit.
var ErrImageTooLarge = errors.New("remote image exceeds size limit")

// IsRemote reports whether path is an http(s) URL.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// RemoteFetcher downloads images and keeps them in a local cache directory, so repeated
// runs against the same URL only download once.
type RemoteFetcher struct {
	CacheDir string
	Timeout  time.Duration
	MaxBytes int64
	Client   *http.Client
	Logger   hclog.Logger
}

// DefaultCacheDir returns the user cache directory for downloaded images.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "tincture", "images"), nil
	}
	return filepath.Join(cacheDir, "tincture", "images"), nil
}

// cacheFilename derives a stable name from the URL, keeping its image extension.
func cacheFilename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if !isImageFile("x" + ext) {
		ext = ".img"
	}

	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// Fetch returns the local path of the image at url, downloading it when it is not cached.
func (f *RemoteFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if !IsRemote(url) {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	logger := f.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cacheDir := f.CacheDir
	if cacheDir == "" {
		dir, err := DefaultCacheDir()
		if err != nil {
			return "", err
		}
		cacheDir = dir
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachedPath := filepath.Join(cacheDir, cacheFilename(url))
	if _, err := os.Stat(cachedPath); err == nil {
		logger.Debug("using cached image", "url", url, "path", cachedPath)
		return cachedPath, nil
	}

	data, err := f.download(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	if err := os.WriteFile(cachedPath, data, 0o644); err != nil { // #nosec G306 - cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}

	logger.Debug("downloaded image", "url", url, "path", cachedPath, "bytes", len(data))
	return cachedPath, nil
}

func (f *RemoteFetcher) download(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		timeout := f.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "tincture/"+version.Version)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, maxBytes)
	}
	return data, nil
}
