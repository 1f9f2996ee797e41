package converter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchProgress_Disabled(t *testing.T) {
	p := newBatchProgress(ProgressConfig{Enabled: false}, 3)

	assert.Nil(t, p.bar)
	p.fileDone("a.wav", nil)
	p.wait()
}

func TestBatchProgress_NoFiles(t *testing.T) {
	p := newBatchProgress(ProgressConfig{Enabled: true, Writer: &bytes.Buffer{}}, 0)
	assert.Nil(t, p.container)
	p.wait()
}

func TestBatchProgress_CountsFilesAndFailures(t *testing.T) {
	var out bytes.Buffer
	p := newBatchProgress(ProgressConfig{Enabled: true, Writer: &out}, 2)

	p.fileDone("/audio/first.wav", nil)
	p.fileDone("/audio/second.mp3", errors.New("upstream down"))
	p.wait()

	assert.Contains(t, out.String(), "Transcribing")
	assert.Contains(t, out.String(), "2/2 files")
	assert.Contains(t, out.String(), "1 failed second.mp3")
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.True(t, ShouldShowProgress(true))
}
