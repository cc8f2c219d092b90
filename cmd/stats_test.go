package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/naka-gawa/ghstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceBody = `{"data":{"user":{"name":"Alice","login":"alice","bio":null,"location":null,"email":"",
	"repositories":{"totalCount":0,"nodes":[]},
	"starredRepositories":{"totalCount":1},"organizations":{"totalCount":0},
	"contributionsCollection":{"totalCommitContributions":12,"totalIssueContributions":3,"totalPullRequestContributions":0,
		"totalPullRequestReviewContributions":0,"contributionCalendar":{"totalContributions":15}},
	"repositoriesContributedTo":{"totalCount":1,"nodes":[{"name":"tea-party","isPrivate":false,
		"createdAt":"2021-01-01T00:00:00Z","updatedAt":"2023-01-10T00:00:00Z","pushedAt":"2023-01-09T00:00:00Z",
		"owner":{"login":"hatter"},"primaryLanguage":null,"ref":null}]},
	"issues":{"totalCount":0,"nodes":[]},"pullRequests":{"totalCount":0,"nodes":[]}}}}`

const bobBody = `{"data":{"user":{"name":null,"login":"bob",
	"contributionsCollection":{"totalCommitContributions":4,"totalPullRequestContributions":2,"contributionCalendar":{"totalContributions":6}},
	"repositoriesContributedTo":{"totalCount":1,"nodes":[{"name":"croquet","owner":{"login":"queen"},
		"ref":{"target":{"additions":40,"deletions":8,"history":{"nodes":[{"message":"Paint roses red","committedDate":"2023-01-20T00:00:00Z"}]}}}}]}}}}`

const invalidHandleBody = `{"errors":[{"type":"INVALID","message":"Variable $login of type String! was provided invalid value"}]}`

// fakeGitHub answers GraphQL queries per login and counts requests in order.
type fakeGitHub struct {
	mu        sync.Mutex
	responses map[string]string
	logins    []string
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/rate_limit" {
		fmt.Fprint(w, `{"resources":{"core":{"limit":5000,"remaining":4999,"reset":1700000000},"graphql":{"limit":5000,"remaining":4998,"reset":1700000000}}}`)
		return
	}
	var body struct {
		Variables struct {
			Login string `json:"login"`
		} `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.logins = append(f.logins, body.Variables.Login)
	f.mu.Unlock()

	resp, ok := f.responses[body.Variables.Login]
	if !ok {
		resp = invalidHandleBody
	}
	fmt.Fprint(w, resp)
}

func (f *fakeGitHub) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.logins...)
}

func setupFakeGitHub(t *testing.T, token string) *fakeGitHub {
	fake := &fakeGitHub{responses: map[string]string{"alice": aliceBody, "bob": bobBody}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	t.Setenv("GITHUB_API_TOKEN", token)
	t.Setenv("GITHUB_GRAPHQL_URL", server.URL+"/graphql")
	t.Setenv("GITHUB_REST_URL", server.URL+"/")
	t.Setenv("GHSTATS_REQUEST_RATE", "0")
	t.Setenv("GHSTATS_WAIT_SECONDARY_RATE_LIMIT", "false")
	return fake
}

func execute(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		printError(&stderr, err)
	}
	return stdout.String(), stderr.String(), err
}

func TestStats_TextReport(t *testing.T) {
	fake := setupFakeGitHub(t, "secret")

	stdout, _, err := execute("stats", "alice", "--from", "2023-01-01", "--to", "2023-01-31")
	require.NoError(t, err)

	assert.Equal(t, []string{"alice"}, fake.requested())
	assert.Contains(t, stdout, "Total Commits: 12\n")
	assert.Contains(t, stdout, "Total Pull Request: 0\n")
	assert.Contains(t, stdout, "Owner: hatter\n    main: null\n")
	assert.NotContains(t, stdout, "Summary")
}

func TestStats_TextReportIsReproducible(t *testing.T) {
	setupFakeGitHub(t, "secret")

	first, _, err := execute("stats", "alice", "bob", "--from", "2023-01-01", "--to", "2023-01-31")
	require.NoError(t, err)
	second, _, err := execute("stats", "alice", "bob", "--from", "2023-01-01", "--to", "2023-01-31")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Summary (2 users):\n")
	assert.Contains(t, first, "    main: +40 -8\n    * 2023-01-20 Paint roses red\n")
}

func TestStats_AbortsOnMissingData(t *testing.T) {
	fake := setupFakeGitHub(t, "secret")

	stdout, stderr, err := execute("stats", "alice", "nobody", "bob", "--from", "2023-01-01", "--to", "2023-01-31")
	require.Error(t, err)

	assert.True(t, domain.IsUpstreamError(err))
	assert.Equal(t, []string{"alice", "nobody"}, fake.requested())
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `failed to fetch activity of "nobody"`)
	assert.Contains(t, stderr, invalidHandleBody)
}

func TestStats_ConfigErrorsNeverReachGitHub(t *testing.T) {
	testCases := []struct {
		name  string
		token string
		args  []string
	}{
		{
			name:  "missing token",
			token: "",
			args:  []string{"stats", "alice", "--from", "2023-01-01", "--to", "2023-01-31"},
		},
		{
			name:  "malformed date",
			token: "secret",
			args:  []string{"stats", "alice", "--from", "2023/01/01", "--to", "2023-01-31"},
		},
		{
			name:  "unknown chart",
			token: "secret",
			args:  []string{"stats", "alice", "--from", "2023-01-01", "--to", "2023-01-31", "--chart", "radar"},
		},
		{
			name:  "invalid login",
			token: "secret",
			args:  []string{"stats", `alice"){id}`, "--from", "2023-01-01", "--to", "2023-01-31"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := setupFakeGitHub(t, tc.token)

			_, stderr, err := execute(tc.args...)
			require.Error(t, err)
			assert.True(t, domain.IsConfigError(err), "unexpected error kind: %v", err)
			assert.Contains(t, stderr, "Error: ")
			assert.Empty(t, fake.requested())
		})
	}
}

func TestStats_FlagErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "no logins", args: []string{"stats", "--from", "2023-01-01", "--to", "2023-01-31"}},
		{name: "missing to", args: []string{"stats", "alice", "--from", "2023-01-01"}},
		{name: "chart and json", args: []string{"stats", "alice", "--from", "2023-01-01", "--to", "2023-01-31", "--chart", "pie", "--json"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := setupFakeGitHub(t, "secret")
			_, _, err := execute(tc.args...)
			assert.Error(t, err)
			assert.Empty(t, fake.requested())
		})
	}
}

func TestStats_JSON(t *testing.T) {
	setupFakeGitHub(t, "secret")

	stdout, _, err := execute("stats", "alice", "bob", "--from", "2023-01-01", "--to", "2023-01-31", "--json")
	require.NoError(t, err)

	var records []domain.UserActivity
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].Login)
	assert.Equal(t, "bob", records[1].Login)
	assert.Equal(t, domain.Churn{Login: "bob", Additions: 40, Deletions: 8}, records[1].Churn())
}

func TestStats_Chart(t *testing.T) {
	setupFakeGitHub(t, "secret")
	path := filepath.Join(t.TempDir(), "churn.html")

	stdout, _, err := execute("stats", "alice", "bob", "--from", "2023-01-01", "--to", "2023-01-31", "--chart", "churn", "--out", path)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("Chart written to %s\n", path), stdout)
	page, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Deletions")
	assert.Contains(t, string(page), "bob")
}

func TestLimits(t *testing.T) {
	setupFakeGitHub(t, "secret")

	stdout, _, err := execute("limits")
	require.NoError(t, err)
	assert.Contains(t, stdout, "core           5000       4999 2023-11-14T22:13:20Z\n")
	assert.Contains(t, stdout, "graphql")
}
