// Package evidence archiva los comprobantes de pago (fotos, PDFs) que respaldan un movimiento
// de tesorería. El archivado es best-effort: un fallo se registra y nunca se propaga al flujo
// de negocio que lo originó.
package evidence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var (
	// ErrSourceMissing el comprobante referenciado no existe en el almacenamiento de subidas.
	ErrSourceMissing = errors.New("evidence: source file not found")
	// ErrExists el nombre de destino ya está ocupado.
	ErrExists = errors.New("evidence: destination already exists")
)

// maxNameAttempts cuántas marcas de tiempo se prueban ante colisiones de nombre.
const maxNameAttempts = 16

// Destination almacenamiento donde quedan las copias archivadas.
type Destination interface {
	// Put crea name (relativo al directorio de archivo) sin sobrescribir: si existe devuelve ErrExists.
	// Devuelve la ruta con la que se referencia la copia.
	Put(ctx context.Context, name string, r io.Reader, size int64) (string, error)
}

// Archiver copia comprobantes desde la raíz de subidas hacia el destino de archivo.
type Archiver struct {
	src  afero.Fs
	dest Destination
	now  func() time.Time
	log  zerolog.Logger
}

// NewArchiver construye el archivador. src es la raíz de almacenamiento donde viven las subidas.
func NewArchiver(src afero.Fs, dest Destination, log zerolog.Logger) *Archiver {
	return &Archiver{
		src:  src,
		dest: dest,
		now:  time.Now,
		log:  log.With().Str("component", "evidence").Logger(),
	}
}

// ArchiveName nombre de la copia: <YYYY>/<MM>/<unix-millis>-<DDMMYYYY><ext>.
func ArchiveName(at time.Time, sourcePath string) string {
	return fmt.Sprintf("%04d/%02d/%d-%s%s",
		at.Year(), int(at.Month()), at.UnixMilli(), at.Format("02012006"), path.Ext(sourcePath))
}

// Archive copia sourcePath al destino y devuelve la ruta archivada. Ante colisión de nombre
// avanza la marca de tiempo un milisegundo y reintenta.
func (a *Archiver) Archive(ctx context.Context, sourcePath string) (string, error) {
	sourcePath = strings.TrimLeft(strings.TrimSpace(sourcePath), "/")
	if sourcePath == "" {
		return "", ErrSourceMissing
	}
	info, err := a.src.Stat(sourcePath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, sourcePath)
	}

	at := a.now()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		f, err := a.src.Open(sourcePath)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrSourceMissing, sourcePath)
		}
		archived, err := a.dest.Put(ctx, ArchiveName(at, sourcePath), f, info.Size())
		f.Close()
		if errors.Is(err, ErrExists) {
			at = at.Add(time.Millisecond)
			continue
		}
		if err != nil {
			return "", err
		}
		return archived, nil
	}
	return "", fmt.Errorf("evidence: no free archive name for %s after %d attempts", sourcePath, maxNameAttempts)
}

// TryArchive versión best-effort de Archive: registra el fallo y devuelve nil.
func (a *Archiver) TryArchive(ctx context.Context, sourcePath string) *string {
	archived, err := a.Archive(ctx, sourcePath)
	if err != nil {
		a.log.Warn().Err(err).Str("source", sourcePath).Msg("no se pudo archivar el comprobante")
		return nil
	}
	a.log.Debug().Str("source", sourcePath).Str("archived", archived).Msg("comprobante archivado")
	return &archived
}
