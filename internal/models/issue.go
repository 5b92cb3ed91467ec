package models

// Issue states as delivered by the GitHub REST v3 issues endpoint.
const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
)

// Label names that drive the progress metrics.
const (
	LabelInProgress = "in-progress"
	LabelBlocked    = "blocked"
)

// Label is a tag attached to an issue.
type Label struct {
	Name string `json:"name" yaml:"name"`
}

// PullRequestRef marks an issue as a pull request. The issues list endpoint
// returns both kinds; presence of this block is the only distinction.
type PullRequestRef struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Issue is one issue (or pull request) as delivered by the tracker's
// list-issues endpoint. Field names mirror the REST v3 wire format.
type Issue struct {
	Number      int             `json:"number" yaml:"number"`
	Title       string          `json:"title" yaml:"title"`
	State       string          `json:"state" yaml:"state"`
	Labels      []Label         `json:"labels" yaml:"labels"`
	ClosedAt    string          `json:"closed_at,omitempty" yaml:"closed_at,omitempty"`
	PullRequest *PullRequestRef `json:"pull_request,omitempty" yaml:"pull_request,omitempty"`
	HTMLURL     string          `json:"html_url,omitempty" yaml:"html_url,omitempty"`
}

// IsPullRequest reports whether the pull request marker is present.
func (i Issue) IsPullRequest() bool {
	return i.PullRequest != nil
}

// IsClosed reports whether the issue state is "closed".
func (i Issue) IsClosed() bool {
	return i.State == IssueStateClosed
}

// HasLabel reports whether the issue carries the exact label name.
// Matching is case-sensitive.
func (i Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LabelNames returns the issue's label names in listing order.
func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}
