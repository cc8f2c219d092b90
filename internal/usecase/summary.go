package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/ghstats/internal/domain"
)

// summaryMetrics are the contribution counts summarised across a batch, in report order.
var summaryMetrics = []struct {
	name  string
	value func(domain.ContributionSummary) int
}{
	{"Commits", func(c domain.ContributionSummary) int { return c.TotalCommitContributions }},
	{"Issues", func(c domain.ContributionSummary) int { return c.TotalIssueContributions }},
	{"Pull Requests", func(c domain.ContributionSummary) int { return c.TotalPullRequestContributions }},
	{"PR Reviews", func(c domain.ContributionSummary) int { return c.TotalPullRequestReviewContributions }},
	{"Contributions", func(c domain.ContributionSummary) int { return c.TotalContributions }},
}

// Summarize computes sum, mean and median of every contribution metric over the batch.
func Summarize(activities []*domain.UserActivity) (*domain.BatchSummary, error) {
	summary := &domain.BatchSummary{Users: len(activities)}
	if len(activities) == 0 {
		return summary, nil
	}

	for _, m := range summaryMetrics {
		values := make([]int, 0, len(activities))
		for _, a := range activities {
			values = append(values, m.value(a.Contributions))
		}
		data := stats.LoadRawData(values)

		sum, err := stats.Sum(data)
		if err != nil {
			return nil, fmt.Errorf("failed to sum %s: %w", m.name, err)
		}
		mean, err := stats.Mean(data)
		if err != nil {
			return nil, fmt.Errorf("failed to average %s: %w", m.name, err)
		}
		median, err := stats.Median(data)
		if err != nil {
			return nil, fmt.Errorf("failed to compute median of %s: %w", m.name, err)
		}
		summary.Metrics = append(summary.Metrics, domain.MetricStats{
			Metric: m.name,
			Sum:    sum,
			Mean:   mean,
			Median: median,
		})
	}
	return summary, nil
}
