package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls the bar drawn while a batch is transcribed.
type ProgressConfig struct {
	Enabled bool
	Writer  io.Writer
}

// batchProgress draws one bar per ConvertFiles call. Every finished file
// advances it, failed or not; failures are counted next to the bar.
type batchProgress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	failed    atomic.Int64
	last      atomic.Value
}

func newBatchProgress(config ProgressConfig, files int) *batchProgress {
	if !config.Enabled || files == 0 {
		return &batchProgress{}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	p := &batchProgress{
		container: mpb.New(
			mpb.WithOutput(writer),
			mpb.WithWidth(40),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
	}
	p.last.Store("")
	p.bar = p.container.AddBar(int64(files),
		mpb.PrependDecorators(
			decor.Name("Transcribing", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d/%d files", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(p.status, decor.WCSyncSpace),
		),
	)
	return p
}

// status renders the failure count and the most recently finished file.
func (p *batchProgress) status(decor.Statistics) string {
	name, _ := p.last.Load().(string)
	if failed := p.failed.Load(); failed > 0 {
		return fmt.Sprintf("%d failed %s", failed, name)
	}
	return name
}

func (p *batchProgress) fileDone(path string, err error) {
	if p.bar == nil {
		return
	}
	if err != nil {
		p.failed.Add(1)
	}
	p.last.Store(filepath.Base(path))
	p.bar.Increment()
}

// wait blocks until the bar has rendered its final state.
func (p *batchProgress) wait() {
	if p.container != nil {
		p.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// ShouldShowProgress reports whether bars should be drawn: always when
// forced, otherwise only on a terminal.
func ShouldShowProgress(forced bool) bool {
	return forced || IsTTY(os.Stderr)
}
