package pipeline

import (
	"context"
	"fmt"
)

// Transcoder converts audio between formats. Implementations are opaque,
// blocking, and fallible; errors are already classified into the outcome
// taxonomy.
type Transcoder interface {
	// ToPCMWav normalizes any supported input into 16kHz mono PCM WAV, the
	// representation the recognizer requires.
	ToPCMWav(ctx context.Context, src, dst string) error
	// Convert re-encodes src into the format implied by dst's extension.
	Convert(ctx context.Context, src, dst string) error
}

// ffmpegTranscoder shells out to ffmpeg.
type ffmpegTranscoder struct {
	bin    string
	runner commandRunner
}

// NewFFmpegTranscoder builds the production transcoder. An empty bin falls
// back to resolving "ffmpeg" on PATH.
func NewFFmpegTranscoder(bin string) Transcoder {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &ffmpegTranscoder{bin: bin, runner: execRunner{}}
}

func (t *ffmpegTranscoder) ToPCMWav(ctx context.Context, src, dst string) error {
	// 16kHz mono 16-bit PCM is what offline recognizers expect.
	return t.run(ctx,
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-acodec", "pcm_s16le",
		"-y",
		dst,
	)
}

func (t *ffmpegTranscoder) Convert(ctx context.Context, src, dst string) error {
	// ffmpeg picks the codec from dst's extension.
	return t.run(ctx, "-i", src, "-vn", "-y", dst)
}

// run executes ffmpeg and classifies failure: a nonzero exit means ffmpeg
// rejected the media (client's fault), anything else is the tool's own fault.
func (t *ffmpegTranscoder) run(ctx context.Context, args ...string) error {
	res, err := t.runner.Run(ctx, t.bin, args...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ErrEngineFailure("transcode", ctx.Err())
	}
	if res.ExitCode > 0 {
		return ErrInvalidInput("unsupported or corrupt audio: the file could not be decoded")
	}
	return ErrEngineFailure("transcode", fmt.Errorf("ffmpeg: %w", err))
}
