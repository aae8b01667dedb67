// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"

	"github.com/pkg/errors"
)

// Match scores. Exact normalized equality always beats the category
// rule, which beats plain substring containment.
const (
	scoreExact     = 100
	scoreHaircut   = 50
	scoreSubstring = 25
)

const haircutKeyword = "haircut"

// serviceMatcher resolves a free-text booking title to a catalog entry.
type serviceMatcher struct {
	serviceRepo    repository.ServiceRepository
	defaultService string
	logger         *slog.Logger
}

func newServiceMatcher(serviceRepo repository.ServiceRepository, defaultService string, logger *slog.Logger) *serviceMatcher {
	return &serviceMatcher{
		serviceRepo:    serviceRepo,
		defaultService: defaultService,
		logger:         logger,
	}
}

// Match returns the best-scoring catalog entry for the title. With no
// positive score the configured default service is used; a default
// missing from the catalog is an error.
func (m *serviceMatcher) Match(ctx context.Context, title string) (*entity.Service, error) {
	services, err := m.serviceRepo.ListServices(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services for matching")
	}

	normalizedTitle := normalizeServiceName(title)

	var (
		best      *entity.Service
		bestScore int
		ambiguous bool
	)
	for _, candidate := range services {
		score := scoreCandidate(normalizedTitle, candidate)
		switch {
		case score > bestScore:
			best = candidate
			bestScore = score
			ambiguous = false
		case score == bestScore && score > 0 && candidate.ID != best.ID:
			ambiguous = true
		}
	}

	if ambiguous {
		m.logger.Warn("Ambiguous service match",
			slog.String("title", title),
			slog.String("matched", best.Name),
			slog.Int("score", bestScore),
		)
	}

	if best != nil {
		return best, nil
	}

	// No positive score: fall back to the configured default.
	normalizedDefault := normalizeServiceName(m.defaultService)
	for _, candidate := range services {
		if normalizeServiceName(candidate.Name) == normalizedDefault {
			m.logger.Info("No service match, using default",
				slog.String("title", title),
				slog.String("default", candidate.Name),
			)

			return candidate, nil
		}
	}

	return nil, domainerrors.ErrServiceNotFound.WrapMessage("no matching service found for " + title)
}

func scoreCandidate(normalizedTitle string, candidate *entity.Service) int {
	normalizedName := normalizeServiceName(candidate.Name)

	if normalizedTitle != "" && normalizedTitle == normalizedName {
		return scoreExact
	}
	if strings.Contains(normalizedTitle, haircutKeyword) &&
		strings.EqualFold(candidate.Category, haircutKeyword) {
		return scoreHaircut
	}
	if normalizedTitle != "" && normalizedName != "" &&
		(strings.Contains(normalizedTitle, normalizedName) || strings.Contains(normalizedName, normalizedTitle)) {
		return scoreSubstring
	}

	return 0
}

// normalizeServiceName lowercases and strips every non-alphanumeric rune
// so "Premium Fade!" and "premium fade" compare equal.
func normalizeServiceName(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}
