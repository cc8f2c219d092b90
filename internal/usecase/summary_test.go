package usecase

import (
	"testing"

	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	activities := []*domain.UserActivity{
		{Login: "alice", Contributions: domain.ContributionSummary{TotalCommitContributions: 12, TotalIssueContributions: 3, TotalContributions: 15}},
		{Login: "bob", Contributions: domain.ContributionSummary{TotalCommitContributions: 4, TotalPullRequestContributions: 2, TotalContributions: 6}},
		{Login: "carol", Contributions: domain.ContributionSummary{TotalCommitContributions: 5, TotalPullRequestReviewContributions: 9, TotalContributions: 14}},
	}

	summary, err := Summarize(activities)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Users)
	assert.Equal(t, []domain.MetricStats{
		{Metric: "Commits", Sum: 21, Mean: 7, Median: 5},
		{Metric: "Issues", Sum: 3, Mean: 1, Median: 0},
		{Metric: "Pull Requests", Sum: 2, Mean: 2.0 / 3.0, Median: 0},
		{Metric: "PR Reviews", Sum: 9, Mean: 3, Median: 0},
		{Metric: "Contributions", Sum: 35, Mean: 35.0 / 3.0, Median: 14},
	}, summary.Metrics)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, &domain.BatchSummary{}, summary)
}
