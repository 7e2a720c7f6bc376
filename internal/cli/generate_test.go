package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// closeErrWriter buffers writes and fails on Close, like a file whose flush fails.
type closeErrWriter struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (w *closeErrWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func TestWriteFile(t *testing.T) {
	diskFull := errors.New("no space left on device")
	renderFailed := errors.New("template failed")

	render := func(w io.Writer) error {
		_, err := io.WriteString(w, "palette")
		return err
	}

	t.Run("close error is returned", func(t *testing.T) {
		w := &closeErrWriter{closeErr: diskFull}
		err := writeFile("out.css", func(string) (io.WriteCloser, error) { return w, nil }, render)
		if !errors.Is(err, diskFull) {
			t.Errorf("writeFile() error = %v, want %v", err, diskFull)
		}
		if !w.closed {
			t.Error("file was not closed")
		}
	})

	t.Run("render error wins over close error", func(t *testing.T) {
		w := &closeErrWriter{closeErr: diskFull}
		err := writeFile("out.css", func(string) (io.WriteCloser, error) { return w, nil },
			func(io.Writer) error { return renderFailed })
		if !errors.Is(err, renderFailed) || !w.closed {
			t.Errorf("writeFile() error = %v, closed = %v", err, w.closed)
		}
	})

	t.Run("create error", func(t *testing.T) {
		err := writeFile("out.css", func(string) (io.WriteCloser, error) { return nil, os.ErrPermission }, render)
		if !errors.Is(err, os.ErrPermission) || !strings.Contains(err.Error(), "failed to create") {
			t.Errorf("writeFile() error = %v", err)
		}
	})

	t.Run("real file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "palette.css")
		if err := writeFile(path, createFile, render); err != nil {
			t.Fatalf("writeFile() error: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != "palette" {
			t.Errorf("file content = %q, %v", data, err)
		}
	})
}
