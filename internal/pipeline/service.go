package pipeline

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"transcribed/internal/registry"
	"transcribed/pkg/types"
)

// Service orchestrates one request at a time per admitted slot: validation,
// gate admission, stage sequence, and unconditional cleanup.
type Service struct {
	gate           *Gate
	registry       *registry.Registry
	transcoder     Transcoder
	recognizer     Recognizer
	renderer       DocumentRenderer
	tempDir        string
	maxUploadBytes int64
	stageTimeout   time.Duration
	outputFormats  map[string]struct{}
	engine         string
	log            zerolog.Logger
}

// Artifact is the successful terminal result of an orchestrated request.
type Artifact struct {
	Bytes    []byte
	MIME     string
	Filename string
}

// Ready reports whether the service can process requests.
func (s *Service) Ready() bool {
	return s.registry != nil && s.transcoder != nil && s.recognizer != nil
}

// Formats lists supported input/output formats and language selectors.
func (s *Service) Formats() types.FormatsResponse {
	out := make([]string, 0, len(s.outputFormats))
	for f := range s.outputFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return types.FormatsResponse{
		InputFormats:  InputFormats(),
		OutputFormats: out,
		Languages:     s.registry.Languages(),
	}
}

// stageCtx bounds a single external-engine call. A hung engine must not hold
// a gate slot forever.
func (s *Service) stageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.stageTimeout)
}

func defaultTempDir() string {
	return os.TempDir()
}
