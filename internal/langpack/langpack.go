// Package langpack loads per-language topic and skill taxonomies used to
// infer defaults for newly created work items.
//
// A pack is a YAML file named after the language code:
//
//	topics:
//	  Arrays:
//	    default_difficulty: Beginner
//	    default_target_hours: 4
//	    keywords: [array, slice]
//	skills:
//	  Concurrency:
//	    keywords: [goroutine, channel]
//	    difficulty: Advanced
package langpack

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/codelog/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed packs/*.yaml
var builtin embed.FS

// Provider returns the pack for a language. A language without a pack gets
// an empty pack, not an error.
type Provider interface {
	Pack(ctx context.Context, languageCode string) (domain.LanguagePack, error)
}

type packFile struct {
	Topics map[string]topicFile `yaml:"topics"`
	Skills map[string]skillFile `yaml:"skills"`
}

type topicFile struct {
	DefaultDifficulty  string   `yaml:"default_difficulty"`
	DefaultTargetHours float64  `yaml:"default_target_hours"`
	Keywords           []string `yaml:"keywords"`
}

type skillFile struct {
	Keywords   []string `yaml:"keywords"`
	Difficulty string   `yaml:"difficulty"`
}

// FileProvider reads <Dir>/<code>.yaml (or .yml) and falls back to the packs
// compiled into the binary. An empty Dir uses the built-in packs only.
type FileProvider struct {
	Dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{Dir: dir}
}

func (p *FileProvider) Pack(_ context.Context, languageCode string) (domain.LanguagePack, error) {
	code := strings.ToLower(strings.TrimSpace(languageCode))
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return domain.LanguagePack{}, fmt.Errorf("invalid language code %q", languageCode)
	}

	if p.Dir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(p.Dir, code+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return domain.LanguagePack{}, fmt.Errorf("reading language pack %s: %w", path, err)
			}
			return Parse(data, path)
		}
	}

	data, err := builtin.ReadFile("packs/" + code + ".yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return domain.LanguagePack{}, nil
	}
	if err != nil {
		return domain.LanguagePack{}, fmt.Errorf("reading built-in language pack %s: %w", code, err)
	}
	return Parse(data, "builtin:"+code)
}

// Parse decodes and validates a pack. source names the pack in errors.
func Parse(data []byte, source string) (domain.LanguagePack, error) {
	var f packFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.LanguagePack{}, fmt.Errorf("parsing language pack %s: %w", source, err)
	}

	pack := domain.LanguagePack{
		Topics: make(map[string]domain.Topic, len(f.Topics)),
		Skills: make(map[string]domain.Skill, len(f.Skills)),
	}
	for name, t := range f.Topics {
		if strings.TrimSpace(name) == "" {
			return domain.LanguagePack{}, fmt.Errorf("language pack %s: topic name must not be empty", source)
		}
		if t.DefaultTargetHours < 0 {
			return domain.LanguagePack{}, fmt.Errorf("language pack %s: topic %q has negative target hours", source, name)
		}
		diff, err := optionalDifficulty(t.DefaultDifficulty)
		if err != nil {
			return domain.LanguagePack{}, fmt.Errorf("language pack %s: topic %q: %w", source, name, err)
		}
		pack.Topics[name] = domain.Topic{
			DefaultDifficulty:  diff,
			DefaultTargetHours: t.DefaultTargetHours,
			Keywords:           lowerAll(t.Keywords),
		}
	}
	for name, s := range f.Skills {
		if strings.TrimSpace(name) == "" {
			return domain.LanguagePack{}, fmt.Errorf("language pack %s: skill name must not be empty", source)
		}
		diff, err := optionalDifficulty(s.Difficulty)
		if err != nil {
			return domain.LanguagePack{}, fmt.Errorf("language pack %s: skill %q: %w", source, name, err)
		}
		pack.Skills[name] = domain.Skill{
			Keywords:   lowerAll(s.Keywords),
			Difficulty: diff,
		}
	}
	return pack, nil
}

func optionalDifficulty(s string) (domain.Difficulty, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return domain.ParseDifficulty(s)
}

func lowerAll(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
