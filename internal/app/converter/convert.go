package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"neon-transcriber/internal/app/api"
)

// Result is the outcome of transcribing one local file.
type Result struct {
	Path       string
	Text       string
	OutputPath string
	Err        error
}

// Converter transcribes local audio files with the configured provider.
type Converter struct {
	transcriber api.Transcriber
	progress    ProgressConfig
	logger      *slog.Logger
}

func NewConverter(transcriber api.Transcriber, progress ProgressConfig, logger *slog.Logger) *Converter {
	return &Converter{
		transcriber: transcriber,
		progress:    progress,
		logger:      logger,
	}
}

// ConvertFiles transcribes paths with at most parallel provider calls in
// flight. When outDir is set each transcription is also written to
// outDir/<name>.txt; inputs sharing a name get -2, -3, ... suffixes in
// input order. Results are returned in input order. Files still waiting
// for a slot when ctx is cancelled fail with ctx.Err().
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, outDir string, parallel int) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if parallel < 1 {
		parallel = 1
	}
	var outputs []string
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output dir %s: %w", outDir, err)
		}
		outputs = outputPaths(outDir, paths)
	}

	progress := newBatchProgress(c.progress, len(paths))
	defer progress.wait()
	results := make([]Result, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				output := ""
				if outputs != nil {
					output = outputs[i]
				}
				results[i] = c.convertToText(ctx, path, output)
				<-sem
			case <-ctx.Done():
				results[i] = Result{Path: path, Err: fmt.Errorf("transcription of %s cancelled: %w", path, ctx.Err())}
			}
			progress.fileDone(path, results[i].Err)

			if results[i].Err != nil {
				c.logger.Error("Transcription failed", "file", path, "error", results[i].Err)
			} else {
				c.logger.Info("Transcription completed", "file", path, "chars", len(results[i].Text))
			}
		}(i, path)
	}
	wg.Wait()

	return results, nil
}

// outputPaths maps every input to a distinct outDir/<stem>.txt.
func outputPaths(outDir string, paths []string) []string {
	used := make(map[string]bool, len(paths))
	outputs := make([]string, len(paths))
	for i, path := range paths {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		name := stem + ".txt"
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d.txt", stem, n)
		}
		used[name] = true
		outputs[i] = filepath.Join(outDir, name)
	}
	return outputs
}

func (c *Converter) convertToText(ctx context.Context, path, output string) Result {
	result := Result{Path: path}

	mediaType := ""
	if mtype, err := mimetype.DetectFile(path); err == nil {
		mediaType = mtype.String()
	}

	f, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to open %s: %w", path, err)
		return result
	}
	defer f.Close()

	text, err := c.transcriber.Transcribe(ctx, api.AudioInput{
		Reader:    f,
		Filename:  filepath.Base(path),
		MediaType: mediaType,
	})
	if err != nil {
		result.Err = fmt.Errorf("transcription error for %s: %w", path, err)
		return result
	}
	result.Text = text

	if output != "" {
		result.OutputPath = output
		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			result.Err = fmt.Errorf("failed to write %s: %w", output, err)
		}
	}

	return result
}
