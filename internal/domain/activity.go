package domain

import "time"

// MissingValue is rendered in place of optional values the API did not return.
const MissingValue = "null"

// MaxListItems bounds every list requested from the API.
const MaxListItems = 5

// UserActivity is the activity record of a single user for one contribution window.
// It is built once per run from the API payload and is never persisted.
type UserActivity struct {
	Name                    *string             `json:"name"`
	Login                   string              `json:"login"`
	Bio                     *string             `json:"bio"`
	Location                *string             `json:"location"`
	Email                   *string             `json:"email"`
	StarredRepositories     int                 `json:"starredRepositories"`
	Organizations           int                 `json:"organizations"`
	Contributions           ContributionSummary `json:"contributionsCollection"`
	Repositories            RepositoryList      `json:"repositories"`
	ContributedRepositories RepositoryList      `json:"repositoriesContributedTo"`
	Issues                  ItemList            `json:"issues"`
	PullRequests            ItemList            `json:"pullRequests"`
}

// RepositoryList is a bounded page of repositories plus the overall count.
type RepositoryList struct {
	TotalCount int          `json:"totalCount"`
	Nodes      []Repository `json:"nodes"`
}

// Repository is a repository owned by or contributed to by a user.
type Repository struct {
	Name            string         `json:"name"`
	IsPrivate       bool           `json:"isPrivate"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	PushedAt        time.Time      `json:"pushedAt"`
	Owner           string         `json:"owner"`
	PrimaryLanguage *string        `json:"primaryLanguage"`
	Branch          *BranchSummary `json:"branch,omitempty"`
}

// Language returns the primary language name, or MissingValue when GitHub
// could not detect one.
func (r Repository) Language() string {
	if r.PrimaryLanguage == nil || *r.PrimaryLanguage == "" {
		return MissingValue
	}
	return *r.PrimaryLanguage
}

// BranchSummary describes the tip of a repository branch.
// It is nil on a Repository when the branch does not exist.
type BranchSummary struct {
	Additions int             `json:"additions"`
	Deletions int             `json:"deletions"`
	Commits   []CommitSummary `json:"commits"`
}

// CommitSummary is one entry of a branch history.
type CommitSummary struct {
	Message       string    `json:"message"`
	CommittedDate time.Time `json:"committedDate"`
}

// ItemList is a bounded page of issues or pull requests plus the overall count.
type ItemList struct {
	TotalCount int    `json:"totalCount"`
	Nodes      []Item `json:"nodes"`
}

// Item is an issue or a pull request.
type Item struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Churn sums additions and deletions over the contributed repositories.
// Repositories without branch data count as zero.
func (u *UserActivity) Churn() Churn {
	c := Churn{Login: u.Login}
	for _, repo := range u.ContributedRepositories.Nodes {
		if repo.Branch == nil {
			continue
		}
		c.Additions += repo.Branch.Additions
		c.Deletions += repo.Branch.Deletions
	}
	return c
}

// DisplayName returns the profile name, falling back to the login.
func (u *UserActivity) DisplayName() string {
	if u.Name == nil || *u.Name == "" {
		return u.Login
	}
	return *u.Name
}

// Optional renders a nullable string.
func Optional(s *string) string {
	if s == nil {
		return MissingValue
	}
	return *s
}
