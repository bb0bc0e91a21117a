package decoders

import (
	"time"

	"github.com/buger/jsonparser"
	"github.com/weiihann/decodebench/models"
)

// tableSet holds the field tables of every model type. Tables are
// built once and are read-only afterwards.
type tableSet struct {
	indieApp *table[models.IndieApp]
	events   field[[]models.Event]
}

func newTableSet(opts *Options) *tableSet {
	developer := newTable("developer",
		intField("user_id", func(d *models.Developer) *int { return &d.UserID }),
		strField("username", func(d *models.Developer) *string { return &d.Username }),
		strField("email", func(d *models.Developer) *string { return &d.Email }),
		urlField("website_url", func(d *models.Developer) *models.URL { return &d.WebsiteURL }),
	)

	indieApp := newTable("indie_app",
		strField("name", func(a *models.IndieApp) *string { return &a.Name }),
		strField("introduction", func(a *models.IndieApp) *string { return &a.Introduction }),
		listField("supported_outputs", parseString,
			func(a *models.IndieApp) *[]string { return &a.SupportedOutputs }),
		objectField("developer", developer, func(a *models.IndieApp) *models.Developer { return &a.Developer }),
	)

	events := listField("events", records(newEventTable(opts)),
		func(list *[]models.Event) *[]models.Event { return list })

	return &tableSet{
		indieApp: indieApp,
		events:   events,
	}
}

func newEventTable(opts *Options) *table[models.Event] {
	actor := newTable("actor",
		intField("id", func(a *models.Actor) *int { return &a.ID }),
		strField("login", func(a *models.Actor) *string { return &a.Login }),
		strField("gravatar_id", func(a *models.Actor) *string { return &a.GravatarID }),
		urlField("url", func(a *models.Actor) *models.URL { return &a.URL }),
		urlField("avatar_url", func(a *models.Actor) *models.URL { return &a.AvatarURL }),
	)

	org := newTable("org",
		intField("id", func(o *models.Org) *int { return &o.ID }),
		strField("login", func(o *models.Org) *string { return &o.Login }),
		strField("gravatar_id", func(o *models.Org) *string { return &o.GravatarID }),
		urlField("url", func(o *models.Org) *models.URL { return &o.URL }),
		urlField("avatar_url", func(o *models.Org) *models.URL { return &o.AvatarURL }),
	)

	repo := newTable("repo",
		intField("id", func(r *models.Repo) *int { return &r.ID }),
		strField("name", func(r *models.Repo) *string { return &r.Name }),
		urlField("url", func(r *models.Repo) *models.URL { return &r.URL }),
	)

	author := newTable("author",
		strField("name", func(a *models.CommitAuthor) *string { return &a.Name }),
		strField("email", func(a *models.CommitAuthor) *string { return &a.Email }),
	)

	commit := newTable("commit",
		strField("sha", func(c *models.Commit) *string { return &c.SHA }),
		strField("message", func(c *models.Commit) *string { return &c.Message }),
		boolField("distinct", func(c *models.Commit) *bool { return &c.Distinct }),
		urlField("url", func(c *models.Commit) *models.URL { return &c.URL }),
		objectField("author", author, func(c *models.Commit) *models.CommitAuthor { return &c.Author }),
	)

	user := newTable("user",
		intField("id", func(u *models.User) *int { return &u.ID }),
		strField("login", func(u *models.User) *string { return &u.Login }),
		strField("type", func(u *models.User) *string { return &u.Type }),
		strField("gravatar_id", func(u *models.User) *string { return &u.GravatarID }),
		urlField("url", func(u *models.User) *models.URL { return &u.URL }),
		urlField("avatar_url", func(u *models.User) *models.URL { return &u.AvatarURL }),
		urlField("repos_url", func(u *models.User) *models.URL { return &u.ReposURL }),
		urlField("subscriptions_url", func(u *models.User) *models.URL { return &u.SubscriptionsURL }),
		urlField("organizations_url", func(u *models.User) *models.URL { return &u.OrganizationsURL }),
		urlField("received_events_url", func(u *models.User) *models.URL { return &u.ReceivedEventsURL }),
	)

	forkee := newTable("forkee",
		intField("id", func(f *models.Forkee) *int { return &f.ID }),
		strField("name", func(f *models.Forkee) *string { return &f.Name }),
		strField("full_name", func(f *models.Forkee) *string { return &f.FullName }),
		strField("description", func(f *models.Forkee) *string { return &f.Description }),
		objectField("owner", user, func(f *models.Forkee) *models.User { return &f.Owner }),
		boolField("private", func(f *models.Forkee) *bool { return &f.Private }),
		boolField("public", func(f *models.Forkee) *bool { return &f.Public }),
		boolField("fork", func(f *models.Forkee) *bool { return &f.Fork }),
		strField("language", func(f *models.Forkee) *string { return &f.Language }),
		optStrField("homepage", func(f *models.Forkee) **string { return &f.Homepage }),
		intField("size", func(f *models.Forkee) *int { return &f.Size }),
		intField("forks", func(f *models.Forkee) *int { return &f.Forks }),
		intField("forks_count", func(f *models.Forkee) *int { return &f.ForksCount }),
		intField("watchers", func(f *models.Forkee) *int { return &f.Watchers }),
		intField("watchers_count", func(f *models.Forkee) *int { return &f.WatchersCount }),
		intField("open_issues", func(f *models.Forkee) *int { return &f.OpenIssues }),
		boolField("has_issues", func(f *models.Forkee) *bool { return &f.HasIssues }),
		boolField("has_wiki", func(f *models.Forkee) *bool { return &f.HasWiki }),
		boolField("has_downloads", func(f *models.Forkee) *bool { return &f.HasDownloads }),
		urlField("url", func(f *models.Forkee) *models.URL { return &f.URL }),
		urlField("html_url", func(f *models.Forkee) *models.URL { return &f.HTMLURL }),
		urlField("clone_url", func(f *models.Forkee) *models.URL { return &f.CloneURL }),
		urlField("git_url", func(f *models.Forkee) *models.URL { return &f.GitURL }),
		strField("ssh_url", func(f *models.Forkee) *string { return &f.SSHURL }),
		urlField("svn_url", func(f *models.Forkee) *models.URL { return &f.SvnURL }),
		timeField(opts, "created_at", func(f *models.Forkee) *time.Time { return &f.CreatedAt }),
		timeField(opts, "updated_at", func(f *models.Forkee) *time.Time { return &f.UpdatedAt }),
		timeField(opts, "pushed_at", func(f *models.Forkee) *time.Time { return &f.PushedAt }),
	)

	issue := newTable("issue",
		intField("id", func(i *models.Issue) *int { return &i.ID }),
		intField("number", func(i *models.Issue) *int { return &i.Number }),
		strField("title", func(i *models.Issue) *string { return &i.Title }),
		strField("body", func(i *models.Issue) *string { return &i.Body }),
		strField("state", func(i *models.Issue) *string { return &i.State }),
		objectField("user", user, func(i *models.Issue) *models.User { return &i.User }),
		optObjectField("assignee", user, func(i *models.Issue) **models.User { return &i.Assignee }),
		intField("comments", func(i *models.Issue) *int { return &i.Comments }),
		urlField("url", func(i *models.Issue) *models.URL { return &i.URL }),
		urlField("html_url", func(i *models.Issue) *models.URL { return &i.HTMLURL }),
		urlField("comments_url", func(i *models.Issue) *models.URL { return &i.CommentsURL }),
		timeField(opts, "created_at", func(i *models.Issue) *time.Time { return &i.CreatedAt }),
		timeField(opts, "updated_at", func(i *models.Issue) *time.Time { return &i.UpdatedAt }),
		optTimeField(opts, "closed_at", func(i *models.Issue) **time.Time { return &i.ClosedAt }),
	)

	comment := newTable("comment",
		intField("id", func(c *models.Comment) *int { return &c.ID }),
		strField("body", func(c *models.Comment) *string { return &c.Body }),
		objectField("user", user, func(c *models.Comment) *models.User { return &c.User }),
		urlField("url", func(c *models.Comment) *models.URL { return &c.URL }),
		urlField("issue_url", func(c *models.Comment) *models.URL { return &c.IssueURL }),
		timeField(opts, "created_at", func(c *models.Comment) *time.Time { return &c.CreatedAt }),
		timeField(opts, "updated_at", func(c *models.Comment) *time.Time { return &c.UpdatedAt }),
	)

	page := newTable("page",
		strField("page_name", func(p *models.Page) *string { return &p.PageName }),
		strField("title", func(p *models.Page) *string { return &p.Title }),
		strField("action", func(p *models.Page) *string { return &p.Action }),
		strField("sha", func(p *models.Page) *string { return &p.SHA }),
		urlField("html_url", func(p *models.Page) *models.URL { return &p.HTMLURL }),
	)

	payload := newTable("payload",
		optStrField("action", func(p *models.Payload) **string { return &p.Action }),
		optStrField("ref", func(p *models.Payload) **string { return &p.Ref }),
		optStrField("ref_type", func(p *models.Payload) **string { return &p.RefType }),
		optStrField("master_branch", func(p *models.Payload) **string { return &p.MasterBranch }),
		optStrField("description", func(p *models.Payload) **string { return &p.Description }),
		optIntField("push_id", func(p *models.Payload) **int { return &p.PushID }),
		optIntField("size", func(p *models.Payload) **int { return &p.Size }),
		optIntField("distinct_size", func(p *models.Payload) **int { return &p.DistinctSize }),
		optStrField("head", func(p *models.Payload) **string { return &p.Head }),
		optStrField("before", func(p *models.Payload) **string { return &p.Before }),
		optional(listField("commits", records(commit), func(p *models.Payload) *[]models.Commit { return &p.Commits })),
		optObjectField("forkee", forkee, func(p *models.Payload) **models.Forkee { return &p.Forkee }),
		optObjectField("issue", issue, func(p *models.Payload) **models.Issue { return &p.Issue }),
		optObjectField("comment", comment, func(p *models.Payload) **models.Comment { return &p.Comment }),
		optional(listField("pages", records(page), func(p *models.Payload) *[]models.Page { return &p.Pages })),
	)

	return newTable("event",
		strField("id", func(e *models.Event) *string { return &e.ID }),
		strField("type", func(e *models.Event) *string { return &e.Type }),
		objectField("actor", actor, func(e *models.Event) *models.Actor { return &e.Actor }),
		objectField("repo", repo, func(e *models.Event) *models.Repo { return &e.Repo }),
		objectField("payload", payload, func(e *models.Event) *models.Payload { return &e.Payload }),
		boolField("public", func(e *models.Event) *bool { return &e.Public }),
		timeField(opts, "created_at", func(e *models.Event) *time.Time { return &e.CreatedAt }),
		optObjectField("org", org, func(e *models.Event) **models.Org { return &e.Org }),
	)
}

// IndieApp decodes the naive payload.
func (s *tableSet) IndieApp(payload []byte) (models.IndieApp, error) {
	var app models.IndieApp
	if err := s.indieApp.decode(payload, &app); err != nil {
		return models.IndieApp{}, err
	}

	return app, nil
}

// Events decodes the GitHub events payload.
func (s *tableSet) Events(payload []byte) ([]models.Event, error) {
	var events []models.Event
	if err := s.events.set(&events, payload, jsonparser.Array); err != nil {
		return nil, err
	}

	return events, nil
}
