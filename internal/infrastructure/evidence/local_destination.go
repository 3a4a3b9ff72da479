package evidence

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"sync"

	"github.com/spf13/afero"
)

// LocalDestination archiva en un filesystem (normalmente la misma raíz de almacenamiento).
type LocalDestination struct {
	fs  afero.Fs
	dir string
	// mu serializa la creación dentro del proceso; no todos los afero.Fs hacen O_EXCL atómico.
	mu sync.Mutex
}

// NewLocalDestination archiva bajo dir dentro de fs, p. ej. "archive".
func NewLocalDestination(fs afero.Fs, dir string) *LocalDestination {
	return &LocalDestination{fs: fs, dir: dir}
}

// Put crea el archivo con O_EXCL: dos archivados concurrentes nunca comparten nombre.
func (d *LocalDestination) Put(ctx context.Context, name string, r io.Reader, _ int64) (string, error) {
	target := path.Join(d.dir, name)
	if err := d.fs.MkdirAll(path.Dir(target), 0o755); err != nil {
		return "", err
	}
	d.mu.Lock()
	f, err := d.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	d.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", ErrExists
		}
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = d.fs.Remove(target)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = d.fs.Remove(target)
		return "", err
	}
	return target, nil
}
