package impl

import (
	"context"
	"log/slog"
	"testing"

	"barbershop/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCatalog() []*entity.Service {
	return []*entity.Service{
		{ID: 1, Name: "Classic Haircut", Duration: 30, Price: 25, Category: "haircut"},
		{ID: 2, Name: "Premium Fade", Duration: 45, Price: 35, Category: "haircut"},
		{ID: 3, Name: "Beard Trim", Duration: 20, Price: 15, Category: "beard"},
		{ID: 4, Name: "Hot Towel Shave", Duration: 30, Price: 30, Category: "shave"},
	}
}

func newMatcherWithCatalog(t *testing.T, defaultService string) (*serviceMatcher, *mockServiceRepository) {
	t.Helper()

	repo := new(mockServiceRepository)
	repo.On("ListServices", mock.Anything).Return(testCatalog(), nil)

	return newServiceMatcher(repo, defaultService, slog.New(slog.DiscardHandler)), repo
}

func TestServiceMatcher_ExactMatch(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Classic Haircut")

	matched, err := matcher.Match(context.Background(), "Premium Fade")
	require.NoError(t, err)
	assert.Equal(t, int64(2), matched.ID)
}

func TestServiceMatcher_ExactMatchIgnoresCaseAndPunctuation(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Classic Haircut")

	matched, err := matcher.Match(context.Background(), "premium-fade!")
	require.NoError(t, err)
	assert.Equal(t, int64(2), matched.ID)
}

func TestServiceMatcher_HaircutKeywordMatchesHaircutCategory(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Hot Towel Shave")

	matched, err := matcher.Match(context.Background(), "30 Minute HAIRCUT appointment")
	require.NoError(t, err)
	assert.Equal(t, "haircut", matched.Category)
	// First haircut-category entry in catalog order wins the tie.
	assert.Equal(t, int64(1), matched.ID)
}

func TestServiceMatcher_SubstringMatch(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Classic Haircut")

	matched, err := matcher.Match(context.Background(), "Beard Trim with Jay")
	require.NoError(t, err)
	assert.Equal(t, int64(3), matched.ID)
}

func TestServiceMatcher_FallsBackToDefault(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Classic Haircut")

	matched, err := matcher.Match(context.Background(), "Something Entirely Different")
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched.ID)
}

func TestServiceMatcher_DefaultMissingFromCatalog(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Nonexistent Service")

	_, err := matcher.Match(context.Background(), "Something Entirely Different")
	require.Error(t, err)
}

func TestServiceMatcher_ExactBeatsCategoryRule(t *testing.T) {
	matcher, _ := newMatcherWithCatalog(t, "Classic Haircut")

	// "classic haircut" contains the keyword, but the exact match on the
	// catalog name must win over the category rule.
	matched, err := matcher.Match(context.Background(), "Classic Haircut")
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched.ID)
}

func TestNormalizeServiceName(t *testing.T) {
	assert.Equal(t, "premiumfade", normalizeServiceName("Premium Fade!"))
	assert.Equal(t, "premiumfade", normalizeServiceName("  premium-FADE  "))
	assert.Equal(t, "", normalizeServiceName("!!! ---"))
}
