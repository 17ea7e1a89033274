package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

var languageCodePattern = regexp.MustCompile(`^[a-z][a-z0-9+#_-]{0,31}$`)

type languageService struct {
	languages repository.LanguageRepo
	observer  UseCaseObserver
}

func NewLanguageService(languages repository.LanguageRepo, observers ...UseCaseObserver) LanguageService {
	return &languageService{languages: languages, observer: useCaseObserverOrNoop(observers)}
}

// Add creates or replaces a language. The code is lowercased.
func (s *languageService) Add(ctx context.Context, l *domain.Language) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "add-language", startedAt, map[string]any{"code": l.Code}, &err)

	l.Code = strings.ToLower(strings.TrimSpace(l.Code))
	if !languageCodePattern.MatchString(l.Code) {
		return fmt.Errorf("%w: language code %q must be lowercase letters, digits or +#_-", ErrInvalidInput, l.Code)
	}
	l.DisplayName = strings.TrimSpace(l.DisplayName)
	if l.DisplayName == "" {
		l.DisplayName = l.Code
	}
	return s.languages.Create(ctx, l)
}

func (s *languageService) Get(ctx context.Context, code string) (*domain.Language, error) {
	return s.languages.GetByCode(ctx, strings.ToLower(strings.TrimSpace(code)))
}

func (s *languageService) List(ctx context.Context, includeInactive bool) ([]*domain.Language, error) {
	return s.languages.List(ctx, includeInactive)
}
