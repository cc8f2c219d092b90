package gateway

import (
	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/shurcooL/githubv4"
)

// DefaultBranch is the ref whose tip is summarised for contributed repositories.
const DefaultBranch = "main"

// ActivityQuery holds the parameters of a single user activity query.
// Every parameter is sent as a bound GraphQL variable.
type ActivityQuery struct {
	Login  string
	Window domain.Window
	Branch string
}

// NewActivityQuery builds the query parameters for one login.
// An empty branch falls back to DefaultBranch.
func NewActivityQuery(login string, window domain.Window, branch string) ActivityQuery {
	if branch == "" {
		branch = DefaultBranch
	}
	return ActivityQuery{Login: login, Window: window, Branch: branch}
}

// Variables returns the GraphQL variables for userActivityQuery.
func (q ActivityQuery) Variables() map[string]interface{} {
	return map[string]interface{}{
		"login":  githubv4.String(q.Login),
		"from":   githubv4.DateTime{Time: q.Window.From},
		"to":     githubv4.DateTime{Time: q.Window.To},
		"branch": githubv4.String(q.Branch),
	}
}

// userActivityQuery is the whole query document. Lists are bounded to the
// last 5 entries, see domain.MaxListItems.
type userActivityQuery struct {
	User *userNode `graphql:"user(login: $login)"`
}

type userNode struct {
	Name     *string
	Login    string
	Bio      *string
	Location *string
	Email    *string

	Repositories struct {
		TotalCount int
		Nodes      []repositoryNode
	} `graphql:"repositories(last: 5)"`
	StarredRepositories struct {
		TotalCount int
	}
	Organizations struct {
		TotalCount int
	}
	ContributionsCollection struct {
		TotalCommitContributions                           int
		TotalIssueContributions                            int
		TotalPullRequestContributions                      int
		TotalPullRequestReviewContributions                int
		TotalRepositoriesWithContributedCommits            int
		TotalRepositoriesWithContributedIssues             int
		TotalRepositoriesWithContributedPullRequestReviews int
		TotalRepositoriesWithContributedPullRequests       int
		ContributionCalendar                               struct {
			TotalContributions int
		}
	} `graphql:"contributionsCollection(from: $from, to: $to)"`
	RepositoriesContributedTo struct {
		TotalCount int
		Nodes      []contributedRepositoryNode
	} `graphql:"repositoriesContributedTo(last: 5, includeUserRepositories: false)"`
	Issues struct {
		TotalCount int
		Nodes      []itemNode
	} `graphql:"issues(last: 5)"`
	PullRequests struct {
		TotalCount int
		Nodes      []itemNode
	} `graphql:"pullRequests(last: 5)"`
}

type repositoryNode struct {
	Name      string
	IsPrivate bool
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	PushedAt  githubv4.DateTime
	Owner     struct {
		Login string
	}
	PrimaryLanguage *struct {
		Name string
	}
}

type contributedRepositoryNode struct {
	Name      string
	IsPrivate bool
	CreatedAt githubv4.DateTime
	UpdatedAt githubv4.DateTime
	PushedAt  githubv4.DateTime
	Owner     struct {
		Login string
	}
	PrimaryLanguage *struct {
		Name string
	}
	// Ref is null when the repository has no such branch.
	Ref *struct {
		Target struct {
			Commit struct {
				Additions int
				Deletions int
				History   struct {
					Nodes []struct {
						Message       string
						CommittedDate githubv4.DateTime
					}
				} `graphql:"history(first: 5)"`
			} `graphql:"... on Commit"`
		}
	} `graphql:"ref(qualifiedName: $branch)"`
}

type itemNode struct {
	Title     string
	URL       string
	CreatedAt githubv4.DateTime
}

func (u *userNode) toUserActivity() *domain.UserActivity {
	cc := u.ContributionsCollection
	a := &domain.UserActivity{
		Name:                u.Name,
		Login:               u.Login,
		Bio:                 u.Bio,
		Location:            u.Location,
		Email:               u.Email,
		StarredRepositories: u.StarredRepositories.TotalCount,
		Organizations:       u.Organizations.TotalCount,
		Contributions: domain.ContributionSummary{
			TotalCommitContributions:                           cc.TotalCommitContributions,
			TotalIssueContributions:                            cc.TotalIssueContributions,
			TotalPullRequestContributions:                      cc.TotalPullRequestContributions,
			TotalPullRequestReviewContributions:                cc.TotalPullRequestReviewContributions,
			TotalRepositoriesWithContributedCommits:            cc.TotalRepositoriesWithContributedCommits,
			TotalRepositoriesWithContributedIssues:             cc.TotalRepositoriesWithContributedIssues,
			TotalRepositoriesWithContributedPullRequestReviews: cc.TotalRepositoriesWithContributedPullRequestReviews,
			TotalRepositoriesWithContributedPullRequests:       cc.TotalRepositoriesWithContributedPullRequests,
			TotalContributions:                                 cc.ContributionCalendar.TotalContributions,
		},
		Repositories: domain.RepositoryList{
			TotalCount: u.Repositories.TotalCount,
			Nodes:      make([]domain.Repository, 0, len(u.Repositories.Nodes)),
		},
		ContributedRepositories: domain.RepositoryList{
			TotalCount: u.RepositoriesContributedTo.TotalCount,
			Nodes:      make([]domain.Repository, 0, len(u.RepositoriesContributedTo.Nodes)),
		},
		Issues:       toItemList(u.Issues.TotalCount, u.Issues.Nodes),
		PullRequests: toItemList(u.PullRequests.TotalCount, u.PullRequests.Nodes),
	}

	for _, n := range u.Repositories.Nodes {
		a.Repositories.Nodes = append(a.Repositories.Nodes, domain.Repository{
			Name:            n.Name,
			IsPrivate:       n.IsPrivate,
			CreatedAt:       n.CreatedAt.Time,
			UpdatedAt:       n.UpdatedAt.Time,
			PushedAt:        n.PushedAt.Time,
			Owner:           n.Owner.Login,
			PrimaryLanguage: languageName(n.PrimaryLanguage),
		})
	}

	for _, n := range u.RepositoriesContributedTo.Nodes {
		repo := domain.Repository{
			Name:            n.Name,
			IsPrivate:       n.IsPrivate,
			CreatedAt:       n.CreatedAt.Time,
			UpdatedAt:       n.UpdatedAt.Time,
			PushedAt:        n.PushedAt.Time,
			Owner:           n.Owner.Login,
			PrimaryLanguage: languageName(n.PrimaryLanguage),
		}
		if n.Ref != nil {
			tip := n.Ref.Target.Commit
			branch := &domain.BranchSummary{
				Additions: tip.Additions,
				Deletions: tip.Deletions,
				Commits:   make([]domain.CommitSummary, 0, len(tip.History.Nodes)),
			}
			for _, c := range tip.History.Nodes {
				branch.Commits = append(branch.Commits, domain.CommitSummary{
					Message:       c.Message,
					CommittedDate: c.CommittedDate.Time,
				})
			}
			repo.Branch = branch
		}
		a.ContributedRepositories.Nodes = append(a.ContributedRepositories.Nodes, repo)
	}

	return a
}

func languageName(l *struct{ Name string }) *string {
	if l == nil {
		return nil
	}
	name := l.Name
	return &name
}

func toItemList(total int, nodes []itemNode) domain.ItemList {
	items := domain.ItemList{TotalCount: total, Nodes: make([]domain.Item, 0, len(nodes))}
	for _, n := range nodes {
		items.Nodes = append(items.Nodes, domain.Item{
			Title:     n.Title,
			URL:       n.URL,
			CreatedAt: n.CreatedAt.Time,
		})
	}
	return items
}
