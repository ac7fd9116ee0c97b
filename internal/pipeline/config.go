package pipeline

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"transcribed/internal/registry"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxConcurrent  = 5
	defaultMaxUploadBytes = int64(25 << 20)
	defaultStageTimeout   = 5 * time.Minute
)

// defaultOutputFormats are the conversion targets offered when none are
// configured.
var defaultOutputFormats = []string{"mp3", "wav", "ogg", "flac", "m4a", "aac"}

// Config encapsulates all tunables for Service construction.
type Config struct {
	Registry       *registry.Registry
	MaxConcurrent  int
	MaxUploadBytes int64
	TempDir        string
	StageTimeout   time.Duration
	OutputFormats  []string

	// Engine overrides; defaults are subprocess implementations built from
	// FFmpegBin / RecognizerBin.
	Transcoder    Transcoder
	Recognizer    Recognizer
	Renderer      DocumentRenderer
	FFmpegBin     string
	RecognizerBin string

	Logger zerolog.Logger
}

// NewWithConfig constructs a Service from Config, applying defaults for
// unset fields.
func NewWithConfig(cfg Config) *Service {
	s := &Service{
		registry:       cfg.Registry,
		maxUploadBytes: cfg.MaxUploadBytes,
		tempDir:        cfg.TempDir,
		stageTimeout:   cfg.StageTimeout,
		transcoder:     cfg.Transcoder,
		recognizer:     cfg.Recognizer,
		renderer:       cfg.Renderer,
		log:            cfg.Logger,
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	s.gate = NewGate(maxConcurrent)
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = defaultMaxUploadBytes
	}
	if s.stageTimeout <= 0 {
		s.stageTimeout = defaultStageTimeout
	}
	if s.tempDir == "" {
		s.tempDir = defaultTempDir()
	}
	s.outputFormats = make(map[string]struct{})
	formats := cfg.OutputFormats
	if len(formats) == 0 {
		formats = defaultOutputFormats
	}
	for _, f := range formats {
		s.outputFormats[normalizeExt(f)] = struct{}{}
	}
	if s.transcoder == nil {
		s.transcoder = NewFFmpegTranscoder(cfg.FFmpegBin)
	}
	if s.recognizer == nil {
		s.recognizer = NewWhisperRecognizer(cfg.RecognizerBin, s.tempDir)
	}
	s.engine = "whisper-cli"
	if cfg.RecognizerBin != "" {
		s.engine = filepath.Base(cfg.RecognizerBin)
	}
	if s.renderer == nil {
		s.renderer = NewPDFRenderer()
	}
	return s
}
