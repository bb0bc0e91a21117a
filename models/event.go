package models

import "time"

// Event is one record of the GitHub public events feed.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     Actor     `json:"actor"`
	Repo      Repo      `json:"repo"`
	Payload   Payload   `json:"payload"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
	Org       *Org      `json:"org,omitempty"`
}

// Actor is the account that triggered an Event.
type Actor struct {
	ID         int    `json:"id"`
	Login      string `json:"login"`
	GravatarID string `json:"gravatar_id"`
	URL        URL    `json:"url"`
	AvatarURL  URL    `json:"avatar_url"`
}

// Org is the organization an Event belongs to, when there is one.
type Org struct {
	ID         int    `json:"id"`
	Login      string `json:"login"`
	GravatarID string `json:"gravatar_id"`
	URL        URL    `json:"url"`
	AvatarURL  URL    `json:"avatar_url"`
}

// Repo is the repository an Event happened in.
type Repo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  URL    `json:"url"`
}

// Payload carries the type-specific part of an Event. Which fields
// are present depends on Event.Type.
type Payload struct {
	Action       *string  `json:"action,omitempty"`
	Ref          *string  `json:"ref,omitempty"`
	RefType      *string  `json:"ref_type,omitempty"`
	MasterBranch *string  `json:"master_branch,omitempty"`
	Description  *string  `json:"description,omitempty"`
	PushID       *int     `json:"push_id,omitempty"`
	Size         *int     `json:"size,omitempty"`
	DistinctSize *int     `json:"distinct_size,omitempty"`
	Head         *string  `json:"head,omitempty"`
	Before       *string  `json:"before,omitempty"`
	Commits      []Commit `json:"commits,omitempty"`
	Forkee       *Forkee  `json:"forkee,omitempty"`
	Issue        *Issue   `json:"issue,omitempty"`
	Comment      *Comment `json:"comment,omitempty"`
	Pages        []Page   `json:"pages,omitempty"`
}

// Commit is one commit of a push payload.
type Commit struct {
	SHA      string       `json:"sha"`
	Message  string       `json:"message"`
	Distinct bool         `json:"distinct"`
	URL      URL          `json:"url"`
	Author   CommitAuthor `json:"author"`
}

// CommitAuthor is the name and email recorded on a Commit.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is the account shape shared by forkee owners, issue users,
// assignees and comment authors.
type User struct {
	ID                int    `json:"id"`
	Login             string `json:"login"`
	Type              string `json:"type"`
	GravatarID        string `json:"gravatar_id"`
	URL               URL    `json:"url"`
	AvatarURL         URL    `json:"avatar_url"`
	ReposURL          URL    `json:"repos_url"`
	SubscriptionsURL  URL    `json:"subscriptions_url"`
	OrganizationsURL  URL    `json:"organizations_url"`
	ReceivedEventsURL URL    `json:"received_events_url"`
}

// Forkee is the repository created by a fork event.
type Forkee struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Owner         User      `json:"owner"`
	Private       bool      `json:"private"`
	Public        bool      `json:"public"`
	Fork          bool      `json:"fork"`
	Language      string    `json:"language"`
	Homepage      *string   `json:"homepage"`
	Size          int       `json:"size"`
	Forks         int       `json:"forks"`
	ForksCount    int       `json:"forks_count"`
	Watchers      int       `json:"watchers"`
	WatchersCount int       `json:"watchers_count"`
	OpenIssues    int       `json:"open_issues"`
	HasIssues     bool      `json:"has_issues"`
	HasWiki       bool      `json:"has_wiki"`
	HasDownloads  bool      `json:"has_downloads"`
	URL           URL       `json:"url"`
	HTMLURL       URL       `json:"html_url"`
	CloneURL      URL       `json:"clone_url"`
	GitURL        URL       `json:"git_url"`
	SSHURL        string    `json:"ssh_url"`
	SvnURL        URL       `json:"svn_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
}

// Issue is the issue referenced by issue and issue comment events.
type Issue struct {
	ID          int        `json:"id"`
	Number      int        `json:"number"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	State       string     `json:"state"`
	User        User       `json:"user"`
	Assignee    *User      `json:"assignee"`
	Comments    int        `json:"comments"`
	URL         URL        `json:"url"`
	HTMLURL     URL        `json:"html_url"`
	CommentsURL URL        `json:"comments_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
}

// Comment is the comment of an issue comment event.
type Comment struct {
	ID        int       `json:"id"`
	Body      string    `json:"body"`
	User      User      `json:"user"`
	URL       URL       `json:"url"`
	IssueURL  URL       `json:"issue_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is one wiki page touched by a gollum event.
type Page struct {
	PageName string `json:"page_name"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	SHA      string `json:"sha"`
	HTMLURL  URL    `json:"html_url"`
}
