// Package image loads images and picks a seed colour from their dominant colours.
package image

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP format
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// FileLoader decodes JPEG, PNG, GIF and WebP images. A directory resolves to a random
// image inside it; URLs are fetched through Remote when it is set.
type FileLoader struct {
	Remote *RemoteFetcher
}

// NewFileLoader returns a loader for local files only.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load decodes the image at a local path.
func (l *FileLoader) Load(path string) (image.Image, error) {
	return l.LoadContext(context.Background(), path)
}

// LoadContext decodes the image at path, downloading it first when path is a URL.
func (l *FileLoader) LoadContext(ctx context.Context, path string) (image.Image, error) {
	if IsRemote(path) {
		if l.Remote == nil {
			return nil, fmt.Errorf("remote images are not enabled: %s", path)
		}
		local, err := l.Remote.Fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		path = local
	}

	resolved, err := ResolveImagePath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(resolved) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s (format: %q): %w", resolved, format, err)
	}
	return img, nil
}

func isImageFile(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

// ScanDirectoryForImages lists the image files directly inside dir. Symlinks to files
// count; broken links and subdirectories are skipped.
func ScanDirectoryForImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var found []string
	for _, entry := range entries {
		if !isImageFile(entry.Name()) {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			found = append(found, p)
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dir)
	}
	return found, nil
}

// ResolveImagePath returns path for a file and a randomly chosen image for a directory.
func ResolveImagePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("image path cannot be empty")
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("image file or directory not found: %s", path)
	case err != nil:
		return "", fmt.Errorf("failed to access image path: %w", err)
	case !info.IsDir():
		return path, nil
	}

	candidates, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return "", fmt.Errorf("failed to pick an image: %w", err)
	}
	return candidates[n.Int64()], nil
}
