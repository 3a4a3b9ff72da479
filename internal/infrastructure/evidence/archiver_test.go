package evidence

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var archivedAt = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestArchiver(t *testing.T) (*Archiver, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "uploads/voucher.jpg", []byte("jpeg"), 0o644))
	a := NewArchiver(fs, NewLocalDestination(fs, "archive"), zerolog.Nop())
	a.now = func() time.Time { return archivedAt }
	return a, fs
}

func TestArchiveName(t *testing.T) {
	got := ArchiveName(archivedAt, "uploads/recibo.PDF")

	assert.Equal(t, "2026/10/1792056600000-15102026.PDF", got)
}

func TestArchive_CopiesIntoDatedFolder(t *testing.T) {
	a, fs := newTestArchiver(t)

	archived, err := a.Archive(context.Background(), "/uploads/voucher.jpg")

	require.NoError(t, err)
	assert.Equal(t, "archive/2026/10/1792056600000-15102026.jpg", archived)
	data, err := afero.ReadFile(fs, archived)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	ok, _ := afero.Exists(fs, "uploads/voucher.jpg")
	assert.True(t, ok, "la fuente no se mueve")
}

func TestArchive_CollisionBumpsTimestamp(t *testing.T) {
	a, _ := newTestArchiver(t)

	first, err := a.Archive(context.Background(), "uploads/voucher.jpg")
	require.NoError(t, err)
	second, err := a.Archive(context.Background(), "uploads/voucher.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "archive/2026/10/1792056600001-15102026.jpg", second)
}

func TestArchive_ConcurrentCopiesNeverShareName(t *testing.T) {
	a, _ := newTestArchiver(t)
	const n = 10

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			archived := a.TryArchive(context.Background(), "uploads/voucher.jpg")
			if archived == nil {
				return
			}
			mu.Lock()
			seen[*archived] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func TestTryArchive_MissingSourceReturnsNil(t *testing.T) {
	a, _ := newTestArchiver(t)

	assert.Nil(t, a.TryArchive(context.Background(), "uploads/no-existe.jpg"))
	assert.Nil(t, a.TryArchive(context.Background(), ""))

	_, err := a.Archive(context.Background(), "uploads/no-existe.jpg")
	assert.ErrorIs(t, err, ErrSourceMissing)
}

type failingDestination struct {
	calls int
	err   error
}

func (d *failingDestination) Put(_ context.Context, _ string, r io.Reader, _ int64) (string, error) {
	d.calls++
	_, _ = io.Copy(io.Discard, r)
	return "", d.err
}

func TestTryArchive_CopyFailureIsSwallowed(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "uploads/a.pdf", []byte("%PDF"), 0o644))
	dest := &failingDestination{err: errors.New("disk full")}
	a := NewArchiver(fs, dest, zerolog.Nop())

	assert.Nil(t, a.TryArchive(context.Background(), "uploads/a.pdf"))
	assert.Equal(t, 1, dest.calls)
}

func TestInlineScheduler_ReportsEveryOutcome(t *testing.T) {
	a, _ := newTestArchiver(t)
	s := NewInlineScheduler(a)

	got := map[string]string{}
	done := func(_ context.Context, src, p string) { got[src] = p }
	s.Schedule(context.Background(), "uploads/voucher.jpg", done)
	s.Schedule(context.Background(), "uploads/perdido.jpg", done)

	require.Len(t, got, 2)
	assert.True(t, strings.HasPrefix(got["uploads/voucher.jpg"], "archive/2026/10/"))
	assert.Empty(t, got["uploads/perdido.jpg"])
}

func TestQueue_RetriesTransientFailures(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "uploads/a.pdf", []byte("%PDF"), 0o644))
	dest := &flakyDestination{failures: 2, inner: NewLocalDestination(fs, "archive")}
	a := NewArchiver(fs, dest, zerolog.Nop())
	q := NewQueue(a, QueueConfig{Size: 4, MaxAttempts: 5}, zerolog.Nop())
	q.newBO = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	q.Start(context.Background())

	result := make(chan string, 1)
	q.Schedule(context.Background(), "uploads/a.pdf", func(_ context.Context, src, p string) {
		assert.Equal(t, "uploads/a.pdf", src)
		result <- p
	})
	q.Stop()

	select {
	case p := <-result:
		assert.True(t, strings.HasPrefix(p, "archive/"))
	default:
		t.Fatal("el archivado no se completó")
	}
	assert.Equal(t, 3, dest.calls)
}

func TestQueue_MissingSourceIsNotRetried(t *testing.T) {
	fs := afero.NewMemMapFs()
	dest := &failingDestination{}
	a := NewArchiver(fs, dest, zerolog.Nop())
	q := NewQueue(a, QueueConfig{Size: 4, MaxAttempts: 5}, zerolog.Nop())
	q.newBO = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	q.Start(context.Background())

	calls, archived := 0, "sin llamar"
	q.Schedule(context.Background(), "uploads/perdido.pdf", func(_ context.Context, _, p string) {
		calls++
		archived = p
	})
	q.Stop()

	assert.Equal(t, 1, calls)
	assert.Empty(t, archived)
	assert.Equal(t, 0, dest.calls)
}

func TestQueue_ScheduleAfterStopIsDropped(t *testing.T) {
	a, _ := newTestArchiver(t)
	q := NewQueue(a, QueueConfig{}, zerolog.Nop())
	q.Start(context.Background())
	q.Stop()

	assert.NotPanics(t, func() {
		q.Schedule(context.Background(), "uploads/voucher.jpg", nil)
	})

	var dropped *string
	q.Schedule(context.Background(), "uploads/voucher.jpg", func(_ context.Context, _, p string) { dropped = &p })
	require.NotNil(t, dropped)
	assert.Empty(t, *dropped)
}

type flakyDestination struct {
	mu       sync.Mutex
	failures int
	calls    int
	inner    Destination
}

func (d *flakyDestination) Put(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	d.mu.Lock()
	d.calls++
	fail := d.calls <= d.failures
	d.mu.Unlock()
	if fail {
		_, _ = io.Copy(io.Discard, r)
		return "", errors.New("connection reset")
	}
	return d.inner.Put(ctx, name, r, size)
}
