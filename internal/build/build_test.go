package build

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	skyimg "github.com/aellingwood/skyforge/internal/image"
	"github.com/aellingwood/skyforge/internal/render"
	"github.com/disintegration/imaging"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRenderer produces a small solid frame per hour and advances a fake
// clock so durations are deterministic.
type stubRenderer struct {
	clock   *clockwork.FakeClock
	failAt  int
	renders atomic.Int32
}

func (s *stubRenderer) Name() string { return "stub" }

func (s *stubRenderer) Render(hour int) (*render.Frame, error) {
	s.renders.Add(1)
	if s.clock != nil {
		s.clock.Advance(time.Second)
	}
	if hour == s.failAt {
		return nil, errors.New("boom")
	}
	img := imaging.New(16, 9, color.NRGBA{R: uint8(hour * 10), G: 40, B: 90, A: 255})
	return &render.Frame{
		Hour:   hour,
		Image:  img,
		Report: render.Report{Hour: hour, Brightness: float64(hour) / 23},
	}, nil
}

func newStub(clock *clockwork.FakeClock) *stubRenderer {
	return &stubRenderer{clock: clock, failAt: -1}
}

func TestAllHours(t *testing.T) {
	hours := AllHours()
	require.Len(t, hours, 24)
	assert.Equal(t, 0, hours[0])
	assert.Equal(t, 23, hours[23])
}

func TestBuild_WritesEveryHour(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))

	b := NewBuilder(newStub(clock), Options{OutputDir: dir, Manifest: true, Clock: clock})
	res, err := b.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Files, 24)
	for h, path := range res.Files {
		assert.Equal(t, skyimg.OutputPath(dir, h, skyimg.JPEG), path)
		_, err := os.Stat(path)
		assert.NoError(t, err, "hour %02d", h)
		assert.Equal(t, h, res.Reports[h].Hour)
	}
	assert.Equal(t, 24*time.Second, res.Duration)
	assert.Equal(t, "stub", res.Generator)

	m, err := skyimg.LoadManifest(dir)
	require.NoError(t, err)
	assert.Len(t, m.Files(), 24)
	assert.Empty(t, m.Verify())
	e := m.Get("05.jpg")
	require.NotNil(t, e)
	assert.Equal(t, 16, e.Width)
	assert.Equal(t, 9, e.Height)
	assert.Equal(t, "stub", e.Generator)
}

func TestBuild_SubsetAndFormat(t *testing.T) {
	dir := t.TempDir()
	hours := []int{5, 7, 21, 1}
	b := NewBuilder(newStub(nil), Options{Hours: hours, OutputDir: dir, Format: skyimg.PNG})
	res, err := b.Build(context.Background())
	require.NoError(t, err)

	want := []string{"05.png", "07.png", "21.png", "01.png"}
	for i, path := range res.Files {
		assert.Equal(t, want[i], filepath.Base(path))
	}
	_, err = os.Stat(filepath.Join(dir, skyimg.ManifestFile))
	assert.True(t, os.IsNotExist(err), "manifest written although disabled")
}

func TestBuild_ParallelMatchesSequential(t *testing.T) {
	seqDir, parDir := t.TempDir(), t.TempDir()

	_, err := NewBuilder(newStub(nil), Options{OutputDir: seqDir}).Build(context.Background())
	require.NoError(t, err)
	_, err = NewBuilder(newStub(nil), Options{OutputDir: parDir, Workers: 4}).Build(context.Background())
	require.NoError(t, err)

	for _, h := range AllHours() {
		name := skyimg.FileName(h, skyimg.JPEG)
		a, err := os.ReadFile(filepath.Join(seqDir, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(parDir, name))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a, b), "%s differs between sequential and parallel", name)
	}
}

func TestBuild_FirstErrorStops(t *testing.T) {
	for _, workers := range []int{1, 4} {
		stub := newStub(nil)
		stub.failAt = 3
		dir := t.TempDir()

		_, err := NewBuilder(stub, Options{OutputDir: dir, Manifest: true, Workers: workers}).Build(context.Background())
		require.Error(t, err, "workers=%d", workers)
		assert.Contains(t, err.Error(), "hour 03")
		assert.Contains(t, err.Error(), "boom")

		_, statErr := os.Stat(filepath.Join(dir, skyimg.ManifestFile))
		assert.True(t, os.IsNotExist(statErr), "manifest saved after a failed build")
	}

	stub := newStub(nil)
	stub.failAt = 3
	_, _ = NewBuilder(stub, Options{OutputDir: t.TempDir()}).Build(context.Background())
	assert.Equal(t, int32(4), stub.renders.Load(), "sequential build kept rendering after failure")
}

func TestBuild_InvalidHour(t *testing.T) {
	_, err := NewBuilder(newStub(nil), Options{Hours: []int{3, 24}, OutputDir: t.TempDir()}).Build(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hour 24")
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder(newStub(nil), Options{OutputDir: t.TempDir()}).Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_LogsProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_, err := NewBuilder(newStub(nil), Options{Hours: []int{7}, OutputDir: t.TempDir(), Logger: logger}).Build(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "generated image")
	assert.Contains(t, out, "hour=07")
	assert.True(t, strings.Contains(out, "07.jpg"), "log missing path: %s", out)
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSource(filepath.Join(dir, "richard-main.jpg"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceMissing)

	path := filepath.Join(dir, "bg.png")
	require.NoError(t, skyimg.WriteFile(path, image.NewNRGBA(image.Rect(0, 0, 12, 8)), skyimg.PNG, 0))
	img, err := LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
}
