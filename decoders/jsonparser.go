package decoders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/weiihann/decodebench/models"
)

// jsonParser builds models by looking up each field by key path in
// the raw payload, without an intermediate tree.
type jsonParser struct {
	opts *Options
}

// IndieApp decodes the naive payload.
func (p *jsonParser) IndieApp(payload []byte) (models.IndieApp, error) {
	r := &reader{opts: p.opts}

	app := models.IndieApp{
		Name:         r.str(payload, "name"),
		Introduction: r.str(payload, "introduction"),
		Developer:    r.developer(r.object(payload, "developer")),
	}

	r.each(payload, false, func(v []byte, vt jsonparser.ValueType) {
		app.SupportedOutputs = append(app.SupportedOutputs, r.scalarString(v, vt))
	}, "supported_outputs")

	if r.err != nil {
		return models.IndieApp{}, r.err
	}

	return app, nil
}

// Events decodes the GitHub events payload.
func (p *jsonParser) Events(payload []byte) ([]models.Event, error) {
	r := &reader{opts: p.opts}

	var events []models.Event

	_, err := jsonparser.ArrayEach(payload, func(v []byte, vt jsonparser.ValueType, _ int, err error) {
		if err != nil {
			r.fail(nil, err)
			return
		}

		if vt != jsonparser.Object {
			r.fail(nil, typeError(jsonparser.Object, vt))
			return
		}

		events = append(events, r.event(v))
	})
	if err != nil {
		return nil, err
	}

	if r.err != nil {
		return nil, r.err
	}

	return events, nil
}

// reader keeps the first lookup failure so a partially populated
// model is never returned.
type reader struct {
	opts *Options
	err  error
}

func (r *reader) fail(keys []string, err error) {
	if r.err != nil {
		return
	}

	if len(keys) == 0 {
		r.err = err
		return
	}

	r.err = fmt.Errorf("%s: %w", strings.Join(keys, "."), err)
}

func typeError(want, got jsonparser.ValueType) error {
	return fmt.Errorf("expected %s, got %s", want, got)
}

func missing(err error, vt jsonparser.ValueType) bool {
	return errors.Is(err, jsonparser.KeyPathNotFoundError) || (err == nil && vt == jsonparser.Null)
}

func (r *reader) str(data []byte, keys ...string) string {
	v, err := jsonparser.GetString(data, keys...)
	if err != nil {
		r.fail(keys, err)
	}

	return v
}

func (r *reader) optStr(data []byte, keys ...string) *string {
	v, vt, _, err := jsonparser.Get(data, keys...)
	if missing(err, vt) {
		return nil
	}

	if err != nil {
		r.fail(keys, err)
		return nil
	}

	s := r.scalarString(v, vt)

	return &s
}

func (r *reader) scalarString(v []byte, vt jsonparser.ValueType) string {
	if vt != jsonparser.String {
		r.fail(nil, typeError(jsonparser.String, vt))
		return ""
	}

	s, err := jsonparser.ParseString(v)
	if err != nil {
		r.fail(nil, err)
	}

	return s
}

func (r *reader) integer(data []byte, keys ...string) int {
	v, err := jsonparser.GetInt(data, keys...)
	if err != nil {
		r.fail(keys, err)
	}

	return int(v)
}

func (r *reader) optInt(data []byte, keys ...string) *int {
	v, vt, _, err := jsonparser.Get(data, keys...)
	if missing(err, vt) {
		return nil
	}

	if err == nil && vt != jsonparser.Number {
		err = typeError(jsonparser.Number, vt)
	}

	var n int64
	if err == nil {
		n, err = jsonparser.ParseInt(v)
	}

	if err != nil {
		r.fail(keys, err)
		return nil
	}

	i := int(n)

	return &i
}

func (r *reader) boolean(data []byte, keys ...string) bool {
	v, err := jsonparser.GetBoolean(data, keys...)
	if err != nil {
		r.fail(keys, err)
	}

	return v
}

func (r *reader) link(data []byte, keys ...string) models.URL {
	raw := r.str(data, keys...)

	u, err := models.ParseURL(raw)
	if err != nil {
		r.fail(keys, err)
	}

	return u
}

func (r *reader) timestamp(data []byte, keys ...string) time.Time {
	raw := r.str(data, keys...)
	if r.err != nil {
		return time.Time{}
	}

	t, err := r.opts.parseTime(raw)
	if err != nil {
		r.fail(keys, err)
	}

	return t
}

func (r *reader) optTime(data []byte, keys ...string) *time.Time {
	raw := r.optStr(data, keys...)
	if raw == nil {
		return nil
	}

	t, err := r.opts.parseTime(*raw)
	if err != nil {
		r.fail(keys, err)
		return nil
	}

	return &t
}

func (r *reader) object(data []byte, keys ...string) []byte {
	v, vt, _, err := jsonparser.Get(data, keys...)
	if err == nil && vt != jsonparser.Object {
		err = typeError(jsonparser.Object, vt)
	}

	if err != nil {
		r.fail(keys, err)
		return nil
	}

	return v
}

func (r *reader) optObject(data []byte, keys ...string) []byte {
	v, vt, _, err := jsonparser.Get(data, keys...)
	if missing(err, vt) {
		return nil
	}

	if err == nil && vt != jsonparser.Object {
		err = typeError(jsonparser.Object, vt)
	}

	if err != nil {
		r.fail(keys, err)
		return nil
	}

	return v
}

// each calls fn for every element of the array at keys. A missing or
// null array is only accepted when optional is set.
func (r *reader) each(
	data []byte,
	optional bool,
	fn func(v []byte, vt jsonparser.ValueType),
	keys ...string,
) {
	if r.err != nil {
		return
	}

	v, vt, _, err := jsonparser.Get(data, keys...)
	if optional && missing(err, vt) {
		return
	}

	if err == nil && vt != jsonparser.Array {
		err = typeError(jsonparser.Array, vt)
	}

	if err != nil {
		r.fail(keys, err)
		return
	}

	_, err = jsonparser.ArrayEach(v, func(elem []byte, evt jsonparser.ValueType, _ int, err error) {
		if err != nil {
			r.fail(keys, err)
			return
		}

		fn(elem, evt)
	})
	if err != nil {
		r.fail(keys, err)
	}
}

func (r *reader) developer(data []byte) models.Developer {
	if data == nil {
		return models.Developer{}
	}

	return models.Developer{
		UserID:     r.integer(data, "user_id"),
		Username:   r.str(data, "username"),
		Email:      r.str(data, "email"),
		WebsiteURL: r.link(data, "website_url"),
	}
}

func (r *reader) event(data []byte) models.Event {
	e := models.Event{
		ID:        r.str(data, "id"),
		Type:      r.str(data, "type"),
		Actor:     r.actor(r.object(data, "actor")),
		Repo:      r.repo(r.object(data, "repo")),
		Payload:   r.payload(r.object(data, "payload")),
		Public:    r.boolean(data, "public"),
		CreatedAt: r.timestamp(data, "created_at"),
	}

	if org := r.optObject(data, "org"); org != nil {
		o := models.Org(r.actor(org))
		e.Org = &o
	}

	return e
}

func (r *reader) actor(data []byte) models.Actor {
	if data == nil {
		return models.Actor{}
	}

	return models.Actor{
		ID:         r.integer(data, "id"),
		Login:      r.str(data, "login"),
		GravatarID: r.str(data, "gravatar_id"),
		URL:        r.link(data, "url"),
		AvatarURL:  r.link(data, "avatar_url"),
	}
}

func (r *reader) repo(data []byte) models.Repo {
	if data == nil {
		return models.Repo{}
	}

	return models.Repo{
		ID:   r.integer(data, "id"),
		Name: r.str(data, "name"),
		URL:  r.link(data, "url"),
	}
}

func (r *reader) payload(data []byte) models.Payload {
	if data == nil {
		return models.Payload{}
	}

	p := models.Payload{
		Action:       r.optStr(data, "action"),
		Ref:          r.optStr(data, "ref"),
		RefType:      r.optStr(data, "ref_type"),
		MasterBranch: r.optStr(data, "master_branch"),
		Description:  r.optStr(data, "description"),
		PushID:       r.optInt(data, "push_id"),
		Size:         r.optInt(data, "size"),
		DistinctSize: r.optInt(data, "distinct_size"),
		Head:         r.optStr(data, "head"),
		Before:       r.optStr(data, "before"),
	}

	r.each(data, true, func(v []byte, vt jsonparser.ValueType) {
		p.Commits = append(p.Commits, r.commit(r.element(v, vt)))
	}, "commits")

	r.each(data, true, func(v []byte, vt jsonparser.ValueType) {
		p.Pages = append(p.Pages, r.page(r.element(v, vt)))
	}, "pages")

	if forkee := r.optObject(data, "forkee"); forkee != nil {
		f := r.forkee(forkee)
		p.Forkee = &f
	}

	if issue := r.optObject(data, "issue"); issue != nil {
		i := r.issue(issue)
		p.Issue = &i
	}

	if comment := r.optObject(data, "comment"); comment != nil {
		c := r.comment(comment)
		p.Comment = &c
	}

	return p
}

// element checks that an array element is an object.
func (r *reader) element(v []byte, vt jsonparser.ValueType) []byte {
	if vt != jsonparser.Object {
		r.fail(nil, typeError(jsonparser.Object, vt))
		return nil
	}

	return v
}

func (r *reader) commit(data []byte) models.Commit {
	if data == nil {
		return models.Commit{}
	}

	return models.Commit{
		SHA:      r.str(data, "sha"),
		Message:  r.str(data, "message"),
		Distinct: r.boolean(data, "distinct"),
		URL:      r.link(data, "url"),
		Author: models.CommitAuthor{
			Name:  r.str(data, "author", "name"),
			Email: r.str(data, "author", "email"),
		},
	}
}

func (r *reader) page(data []byte) models.Page {
	if data == nil {
		return models.Page{}
	}

	return models.Page{
		PageName: r.str(data, "page_name"),
		Title:    r.str(data, "title"),
		Action:   r.str(data, "action"),
		SHA:      r.str(data, "sha"),
		HTMLURL:  r.link(data, "html_url"),
	}
}

func (r *reader) user(data []byte) models.User {
	if data == nil {
		return models.User{}
	}

	return models.User{
		ID:                r.integer(data, "id"),
		Login:             r.str(data, "login"),
		Type:              r.str(data, "type"),
		GravatarID:        r.str(data, "gravatar_id"),
		URL:               r.link(data, "url"),
		AvatarURL:         r.link(data, "avatar_url"),
		ReposURL:          r.link(data, "repos_url"),
		SubscriptionsURL:  r.link(data, "subscriptions_url"),
		OrganizationsURL:  r.link(data, "organizations_url"),
		ReceivedEventsURL: r.link(data, "received_events_url"),
	}
}

func (r *reader) forkee(data []byte) models.Forkee {
	return models.Forkee{
		ID:            r.integer(data, "id"),
		Name:          r.str(data, "name"),
		FullName:      r.str(data, "full_name"),
		Description:   r.str(data, "description"),
		Owner:         r.user(r.object(data, "owner")),
		Private:       r.boolean(data, "private"),
		Public:        r.boolean(data, "public"),
		Fork:          r.boolean(data, "fork"),
		Language:      r.str(data, "language"),
		Homepage:      r.optStr(data, "homepage"),
		Size:          r.integer(data, "size"),
		Forks:         r.integer(data, "forks"),
		ForksCount:    r.integer(data, "forks_count"),
		Watchers:      r.integer(data, "watchers"),
		WatchersCount: r.integer(data, "watchers_count"),
		OpenIssues:    r.integer(data, "open_issues"),
		HasIssues:     r.boolean(data, "has_issues"),
		HasWiki:       r.boolean(data, "has_wiki"),
		HasDownloads:  r.boolean(data, "has_downloads"),
		URL:           r.link(data, "url"),
		HTMLURL:       r.link(data, "html_url"),
		CloneURL:      r.link(data, "clone_url"),
		GitURL:        r.link(data, "git_url"),
		SSHURL:        r.str(data, "ssh_url"),
		SvnURL:        r.link(data, "svn_url"),
		CreatedAt:     r.timestamp(data, "created_at"),
		UpdatedAt:     r.timestamp(data, "updated_at"),
		PushedAt:      r.timestamp(data, "pushed_at"),
	}
}

func (r *reader) issue(data []byte) models.Issue {
	i := models.Issue{
		ID:          r.integer(data, "id"),
		Number:      r.integer(data, "number"),
		Title:       r.str(data, "title"),
		Body:        r.str(data, "body"),
		State:       r.str(data, "state"),
		User:        r.user(r.object(data, "user")),
		Comments:    r.integer(data, "comments"),
		URL:         r.link(data, "url"),
		HTMLURL:     r.link(data, "html_url"),
		CommentsURL: r.link(data, "comments_url"),
		CreatedAt:   r.timestamp(data, "created_at"),
		UpdatedAt:   r.timestamp(data, "updated_at"),
		ClosedAt:    r.optTime(data, "closed_at"),
	}

	if assignee := r.optObject(data, "assignee"); assignee != nil {
		u := r.user(assignee)
		i.Assignee = &u
	}

	return i
}

func (r *reader) comment(data []byte) models.Comment {
	return models.Comment{
		ID:        r.integer(data, "id"),
		Body:      r.str(data, "body"),
		User:      r.user(r.object(data, "user")),
		URL:       r.link(data, "url"),
		IssueURL:  r.link(data, "issue_url"),
		CreatedAt: r.timestamp(data, "created_at"),
		UpdatedAt: r.timestamp(data, "updated_at"),
	}
}
