// Package chart renders comparison charts of a batch as standalone HTML pages.
package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/naka-gawa/ghstats/internal/domain"
)

// Mode selects the chart to render.
type Mode string

const (
	// Pie compares total contributions per user.
	Pie Mode = "pie"
	// Types groups contributions by type per user.
	Types Mode = "types"
	// Churn stacks additions and deletions per user.
	Churn Mode = "churn"
)

// Modes lists every supported mode.
var Modes = []Mode{Pie, Types, Churn}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, 0, len(Modes))
	for _, m := range Modes {
		names = append(names, string(m))
	}
	return "", &domain.ConfigError{Msg: fmt.Sprintf("unknown chart %q, use one of: %s", s, strings.Join(names, ", "))}
}

// Render writes the chart selected by mode for the given records.
func Render(w io.Writer, mode Mode, activities []*domain.UserActivity) error {
	var err error
	switch mode {
	case Pie:
		err = contributionsPie(activities).Render(w)
	case Types:
		err = contributionsByType(activities).Render(w)
	case Churn:
		err = codeChurn(activities).Render(w)
	default:
		return &domain.ConfigError{Msg: fmt.Sprintf("unknown chart %q", mode)}
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", mode, err)
	}
	return nil
}

func initOpts(mode Mode, title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			// A fixed id keeps the page identical for identical input.
			ChartID:         "ghstats_" + string(mode),
			BackgroundColor: "transparent",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

func contributionsPie(activities []*domain.UserActivity) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(initOpts(Pie, "Contributions comparison")...)

	data := make([]opts.PieData, 0, len(activities))
	for _, a := range activities {
		data = append(data, opts.PieData{Name: a.DisplayName(), Value: a.Contributions.TotalContributions})
	}
	pie.AddSeries("Contributions", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}))
	return pie
}

func contributionsByType(activities []*domain.UserActivity) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(Types, "Contributions by Type")...)

	series := []struct {
		name  string
		value func(domain.ContributionSummary) int
	}{
		{"Commits", func(c domain.ContributionSummary) int { return c.TotalCommitContributions }},
		{"Issues", func(c domain.ContributionSummary) int { return c.TotalIssueContributions }},
		{"Pull Requests", func(c domain.ContributionSummary) int { return c.TotalPullRequestContributions }},
		{"Pull Request Reviews", func(c domain.ContributionSummary) int { return c.TotalPullRequestReviewContributions }},
	}

	bar.SetXAxis(logins(activities))
	for _, s := range series {
		data := make([]opts.BarData, 0, len(activities))
		for _, a := range activities {
			data = append(data, opts.BarData{Value: s.value(a.Contributions)})
		}
		bar.AddSeries(s.name, data)
	}
	return bar
}

func codeChurn(activities []*domain.UserActivity) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(initOpts(Churn, "Code churn on contributed repositories")...)

	additions := make([]opts.BarData, 0, len(activities))
	deletions := make([]opts.BarData, 0, len(activities))
	for _, a := range activities {
		c := a.Churn()
		additions = append(additions, opts.BarData{Value: c.Additions})
		deletions = append(deletions, opts.BarData{Value: c.Deletions})
	}

	bar.SetXAxis(logins(activities)).
		AddSeries("Additions", additions).
		AddSeries("Deletions", deletions).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "churn"}))
	return bar
}

func logins(activities []*domain.UserActivity) []string {
	l := make([]string, 0, len(activities))
	for _, a := range activities {
		l = append(l, a.Login)
	}
	return l
}
