// Package report renders activity records for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/naka-gawa/ghstats/internal/domain"
)

const (
	separator     = "=========================================================================================================="
	messageWidth  = 72
	metricColumn  = 16
	numericColumn = 10
)

// Options controls optional parts of the text report.
type Options struct {
	// Branch labels the commit summaries of contributed repositories.
	Branch string
	// Summary is appended after the users when set.
	Summary *domain.BatchSummary
}

// WriteText writes the console report for every record, in order.
// The output depends only on its inputs.
func WriteText(w io.Writer, activities []*domain.UserActivity, opts Options) error {
	var b strings.Builder
	for _, a := range activities {
		writeUser(&b, a, opts.Branch)
	}
	if opts.Summary != nil && opts.Summary.Users > 1 {
		writeSummary(&b, opts.Summary)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the records as indented JSON.
func WriteJSON(w io.Writer, activities []*domain.UserActivity) error {
	jsonData, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func writeUser(b *strings.Builder, a *domain.UserActivity, branch string) {
	cc := a.Contributions

	fmt.Fprintf(b, "%s\n\n", separator)
	fmt.Fprintf(b, "Name: %s\n", domain.Optional(a.Name))
	fmt.Fprintf(b, "Username: %s\n", a.Login)
	fmt.Fprintf(b, "Bio: %s\n", domain.Optional(a.Bio))
	fmt.Fprintf(b, "Location: %s\n", domain.Optional(a.Location))
	fmt.Fprintf(b, "Email: %s\n", domain.Optional(a.Email))
	fmt.Fprintf(b, "Starred Repositories: %d\n", a.StarredRepositories)
	fmt.Fprintf(b, "Organizations: %d\n", a.Organizations)
	fmt.Fprintf(b, "Total Commits: %d\n", cc.TotalCommitContributions)
	fmt.Fprintf(b, "Total Issues: %d\n", cc.TotalIssueContributions)
	fmt.Fprintf(b, "Total Pull Request: %d\n", cc.TotalPullRequestContributions)
	fmt.Fprintf(b, "Total PR Reviews: %d\n", cc.TotalPullRequestReviewContributions)
	fmt.Fprintf(b, "Total Contributions: %d\n", cc.TotalContributions)

	fmt.Fprintf(b, "\nIssues (last %d of %d):\n", domain.MaxListItems, a.Issues.TotalCount)
	for _, issue := range a.Issues.Nodes {
		fmt.Fprintf(b, "- Title: %s, URL: %s, Created at: %s\n", issue.Title, issue.URL, timestamp(issue.CreatedAt))
	}

	fmt.Fprintf(b, "\nPull Requests (last %d of %d):\n", domain.MaxListItems, a.PullRequests.TotalCount)
	for _, pr := range a.PullRequests.Nodes {
		fmt.Fprintf(b, "- Title: %s, URL: %s, Created at: %s\n", pr.Title, pr.URL, timestamp(pr.CreatedAt))
	}

	fmt.Fprintf(b, "\nRepositories (last %d of %d):\n", domain.MaxListItems, a.Repositories.TotalCount)
	for _, repo := range a.Repositories.Nodes {
		fmt.Fprintf(b, "- Name: %s, Primary lang: %s, Created at: %s\n", repo.Name, repo.Language(), timestamp(repo.CreatedAt))
	}

	fmt.Fprintf(b, "\nContributions (last %d of %d):\n", domain.MaxListItems, a.ContributedRepositories.TotalCount)
	for _, repo := range a.ContributedRepositories.Nodes {
		fmt.Fprintf(b, "- Name: %s, Private: %t, Primary lang: %s, Created at: %s, Last push: %s, Owner: %s\n",
			repo.Name, repo.IsPrivate, repo.Language(), timestamp(repo.CreatedAt), timestamp(repo.PushedAt), repo.Owner)
		writeBranch(b, repo.Branch, branch)
	}

	fmt.Fprintf(b, "\n%s\n", separator)
}

func writeBranch(b *strings.Builder, s *domain.BranchSummary, branch string) {
	if branch == "" {
		branch = "main"
	}
	if s == nil {
		fmt.Fprintf(b, "    %s: %s\n", branch, domain.MissingValue)
		return
	}
	fmt.Fprintf(b, "    %s: +%d -%d\n", branch, s.Additions, s.Deletions)
	for _, c := range s.Commits {
		fmt.Fprintf(b, "    * %s %s\n", c.CommittedDate.UTC().Format("2006-01-02"), Headline(c.Message, messageWidth))
	}
}

func writeSummary(b *strings.Builder, s *domain.BatchSummary) {
	fmt.Fprintf(b, "\nSummary (%d users):\n", s.Users)
	fmt.Fprintf(b, "%s %s %s %s\n",
		PadRight("Metric", metricColumn),
		PadLeft("Sum", numericColumn),
		PadLeft("Mean", numericColumn),
		PadLeft("Median", numericColumn))
	for _, m := range s.Metrics {
		fmt.Fprintf(b, "%s %s %s %s\n",
			PadRight(m.Metric, metricColumn),
			PadLeft(fmt.Sprintf("%.0f", m.Sum), numericColumn),
			PadLeft(fmt.Sprintf("%.2f", m.Mean), numericColumn),
			PadLeft(fmt.Sprintf("%.1f", m.Median), numericColumn))
	}
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return domain.MissingValue
	}
	return t.UTC().Format(time.RFC3339)
}

// Headline returns the first line of a commit message, truncated to width cells.
func Headline(message string, width int) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = message[:i]
	}
	message = strings.TrimSpace(message)
	return runewidth.Truncate(message, width, "...")
}

// PadRight pads str with spaces up to width cells.
func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// PadLeft right-aligns str in width cells.
func PadLeft(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return strings.Repeat(" ", width-w) + str
	}
	return str
}
