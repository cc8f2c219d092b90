// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// ContributionSummary holds the contribution counts of a single user
// inside the requested contribution window.
type ContributionSummary struct {
	TotalCommitContributions                           int `json:"totalCommitContributions"`
	TotalIssueContributions                            int `json:"totalIssueContributions"`
	TotalPullRequestContributions                      int `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions                int `json:"totalPullRequestReviewContributions"`
	TotalRepositoriesWithContributedCommits            int `json:"totalRepositoriesWithContributedCommits"`
	TotalRepositoriesWithContributedIssues             int `json:"totalRepositoriesWithContributedIssues"`
	TotalRepositoriesWithContributedPullRequestReviews int `json:"totalRepositoriesWithContributedPullRequestReviews"`
	TotalRepositoriesWithContributedPullRequests       int `json:"totalRepositoriesWithContributedPullRequests"`
	// TotalContributions is the contribution calendar total for the window.
	TotalContributions int `json:"totalContributions"`
}

// MetricStats describes one contribution metric across every user of a batch.
type MetricStats struct {
	Metric string  `json:"metric"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// BatchSummary aggregates contribution counts over a whole batch.
type BatchSummary struct {
	Users   int           `json:"users"`
	Metrics []MetricStats `json:"metrics"`
}

// Churn is the code churn of a user summed over the tips of the branches
// of the repositories they contributed to.
type Churn struct {
	Login     string `json:"login"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// RateBudget is the request quota of one GitHub API resource.
type RateBudget struct {
	Resource  string    `json:"resource"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}
