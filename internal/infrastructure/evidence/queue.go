package evidence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// DoneFunc se invoca una sola vez al terminar el trabajo, con el origen pedido. archivedPath
// queda vacío si no hubo copia (origen inexistente, reintentos agotados o trabajo descartado).
type DoneFunc func(ctx context.Context, sourcePath, archivedPath string)

// Job un archivado pendiente.
type Job struct {
	SourcePath string
	Done       DoneFunc
}

func (j Job) finish(ctx context.Context, archivedPath string) {
	if j.Done != nil {
		j.Done(ctx, j.SourcePath, archivedPath)
	}
}

// InlineScheduler archiva en el acto, en la goroutine del llamador.
type InlineScheduler struct {
	archiver *Archiver
}

// NewInlineScheduler construye un scheduler síncrono.
func NewInlineScheduler(archiver *Archiver) *InlineScheduler {
	return &InlineScheduler{archiver: archiver}
}

// Schedule archiva sourcePath y llama done con el resultado.
func (s *InlineScheduler) Schedule(ctx context.Context, sourcePath string, done func(ctx context.Context, sourcePath, archivedPath string)) {
	job := Job{SourcePath: sourcePath, Done: done}
	if archived := s.archiver.TryArchive(ctx, sourcePath); archived != nil {
		job.finish(ctx, *archived)
		return
	}
	job.finish(ctx, "")
}

// QueueConfig tamaño del buffer y política de reintentos.
type QueueConfig struct {
	Size        int
	MaxAttempts uint64
	Workers     int
}

// Queue ejecuta archivados en segundo plano con reintentos exponenciales. Un comprobante
// inexistente es un fallo permanente y no se reintenta.
type Queue struct {
	archiver *Archiver
	cfg      QueueConfig
	jobs     chan Job
	log      zerolog.Logger
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	newBO    func() backoff.BackOff
}

// NewQueue crea la cola; Start lanza los workers.
func NewQueue(archiver *Archiver, cfg QueueConfig, log zerolog.Logger) *Queue {
	if cfg.Size <= 0 {
		cfg.Size = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 5
	}
	return &Queue{
		archiver: archiver,
		cfg:      cfg,
		jobs:     make(chan Job, cfg.Size),
		log:      log.With().Str("component", "archive_queue").Logger(),
		newBO: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxElapsedTime = 2 * time.Minute
			return b
		},
	}
}

// Start arranca los workers; terminan cuando se cierra la cola con Stop.
func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for job := range q.jobs {
				q.process(ctx, job)
			}
		}()
	}
}

// Stop deja de aceptar trabajos y espera a que se vacíe la cola.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

// Schedule encola el archivado. Si la cola está llena el trabajo se descarta con un warning:
// el movimiento conserva la ruta original del comprobante.
func (q *Queue) Schedule(ctx context.Context, sourcePath string, done func(ctx context.Context, sourcePath, archivedPath string)) {
	job := Job{SourcePath: sourcePath, Done: done}
	q.mu.RLock()
	accepted := false
	if !q.closed {
		select {
		case q.jobs <- job:
			accepted = true
		default:
		}
	}
	closed := q.closed
	q.mu.RUnlock()
	if accepted {
		return
	}
	if closed {
		q.log.Warn().Str("source", sourcePath).Msg("cola de archivado cerrada, comprobante no archivado")
	} else {
		q.log.Warn().Str("source", sourcePath).Msg("cola de archivado llena, comprobante no archivado")
	}
	job.finish(ctx, "")
}

func (q *Queue) process(ctx context.Context, job Job) {
	var archived string
	op := func() error {
		var err error
		archived, err = q.archiver.Archive(ctx, job.SourcePath)
		if errors.Is(err, ErrSourceMissing) {
			return backoff.Permanent(err)
		}
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(q.newBO(), q.cfg.MaxAttempts-1), ctx)
	err := backoff.RetryNotify(op, bo, func(err error, wait time.Duration) {
		q.log.Debug().Err(err).Str("source", job.SourcePath).Dur("wait", wait).Msg("reintentando archivado")
	})
	if err != nil {
		q.log.Warn().Err(err).Str("source", job.SourcePath).Msg("no se pudo archivar el comprobante")
		job.finish(ctx, "")
		return
	}
	job.finish(ctx, archived)
}
