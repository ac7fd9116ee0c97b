package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"transcribed/internal/common/fsutil"
	"transcribed/pkg/types"
)

// LanguageAuto is the selector that resolves to the default model.
// It is a fixed default-model choice, not acoustic language detection.
const LanguageAuto = "auto"

// Registry maps language selectors to recognition models on disk.
type Registry struct {
	models      map[string]types.Model
	defaultLang string
}

// tags maps known language selectors to the tag the engine expects.
var tags = map[string]string{
	"english": "en-US",
	"spanish": "es-ES",
}

// Load resolves each configured language to a model path under modelsDir and
// verifies the path exists. languages maps a selector (e.g. "english") to a
// model file or directory name relative to modelsDir; absolute values are
// used as-is.
func Load(modelsDir string, languages map[string]string, defaultLang string) (*Registry, error) {
	base, err := fsutil.ExpandHome(modelsDir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	if len(languages) == 0 {
		return nil, fmt.Errorf("no languages configured")
	}
	models := make(map[string]types.Model, len(languages))
	for lang, name := range languages {
		key := strings.ToLower(strings.TrimSpace(lang))
		if key == "" || key == LanguageAuto {
			return nil, fmt.Errorf("invalid language selector: %q", lang)
		}
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(abs, name)
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("model for language %s: %w", key, err)
		}
		models[key] = types.Model{Language: key, Tag: tags[key], Path: p}
	}
	if defaultLang == "" {
		return nil, fmt.Errorf("default language is required")
	}
	defaultLang = strings.ToLower(strings.TrimSpace(defaultLang))
	if _, ok := models[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no configured model", defaultLang)
	}
	return &Registry{models: models, defaultLang: defaultLang}, nil
}

// Resolve maps a language selector to its model. "auto" and the empty
// selector resolve to the default model.
func (r *Registry) Resolve(language string) (types.Model, bool) {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" || key == LanguageAuto {
		key = r.defaultLang
	}
	m, ok := r.models[key]
	return m, ok
}

// Known reports whether the selector is acceptable in a request.
func (r *Registry) Known(language string) bool {
	key := strings.ToLower(strings.TrimSpace(language))
	if key == "" || key == LanguageAuto {
		return true
	}
	_, ok := r.models[key]
	return ok
}

// Languages returns all request selectors in sorted order, "auto" included.
func (r *Registry) Languages() []string {
	out := make([]string, 0, len(r.models)+1)
	for lang := range r.models {
		out = append(out, lang)
	}
	sort.Strings(out)
	return append(out, LanguageAuto)
}
