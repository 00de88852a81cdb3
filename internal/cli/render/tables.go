package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"followback/internal/domain/batch"
	"followback/internal/domain/profile"
	"followback/internal/domain/quota"
	"followback/internal/domain/relation"

	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
)

const (
	MaxListedFailures = 5
	partitionColumns  = 3
)

func resourceRow(t *uitable.Table, name string, r quota.Resource, now time.Time) {
	t.AddRow(
		name,
		humanize.Comma(int64(r.Remaining)),
		humanize.Comma(int64(r.Limit)),
		fmt.Sprintf("%.1f%%", r.UsedPercent()),
		humanize.RelTime(r.Reset, now, "ago", "from now"),
	)
}

// Quota prints every resource class and warns about the low ones.
func Quota(w io.Writer, s *quota.State, now time.Time) {
	t := uitable.New()
	t.AddRow("RESOURCE", "REMAINING", "LIMIT", "USED", "RESETS")
	resourceRow(t, "core", s.Core, now)
	resourceRow(t, "search", s.Search, now)
	if s.GraphQL != nil {
		resourceRow(t, "graphql", *s.GraphQL, now)
	}
	fmt.Fprintln(w, t)

	if s.CoreLow() {
		Warning(w, "core quota is low: %d requests left, resets %s",
			s.Core.Remaining, humanize.RelTime(s.Core.Reset, now, "ago", "from now"))
	}
	if s.SearchLow() {
		Warning(w, "search quota is low: %d requests left", s.Search.Remaining)
	}
}

// RatioBand describes a follow-back ratio in words.
func RatioBand(ratio float64) string {
	switch {
	case ratio < 30:
		return "very low"
	case ratio < 50:
		return "low"
	case ratio > 70:
		return "great"
	}

	return "fair"
}

func fetchNote(r *relation.FetchResult) string {
	if r.Incomplete {
		return string(r.Status) + " (partial)"
	}

	return string(r.Status)
}

// Analysis prints the partition summary and the follow-back ratio.
func Analysis(w io.Writer, a *relation.Analysis) {
	p := a.Partition

	t := uitable.New()
	t.AddRow("FOLLOWERS", humanize.Comma(int64(p.Followers())), fetchNote(a.Followers))
	t.AddRow("FOLLOWING", humanize.Comma(int64(p.Following())), fetchNote(a.Following))
	t.AddRow("MUTUAL", humanize.Comma(int64(len(p.Mutual))))
	t.AddRow("NOT FOLLOWING BACK", humanize.Comma(int64(len(p.OutboundOnly))))
	t.AddRow("FANS", humanize.Comma(int64(len(p.InboundOnly))))
	Header(w, "Follow-back analysis for "+string(a.Subject))
	fmt.Fprintln(w, t)

	if a.Incomplete() {
		Warning(w, "collections are incomplete, the partition may misplace some users")
	}
	for _, r := range []*relation.FetchResult{a.Followers, a.Following} {
		if r.Err != nil {
			Failure(w, "%s: %s", r.Kind, r.Err)
		}
	}

	ratio, ok := p.FollowBackRatio()
	if !ok {
		Info(w, "follow-back ratio: n/a, not following anyone")
		return
	}

	switch band := RatioBand(ratio); band {
	case "very low", "low":
		Warning(w, "follow-back ratio: %.1f%% (%s)", ratio, band)
	case "great":
		Success(w, "follow-back ratio: %.1f%% (%s)", ratio, band)
	default:
		Info(w, "follow-back ratio: %.1f%%", ratio)
	}
}

// Identities prints ids in columns.
func Identities(w io.Writer, title string, ids []relation.Identity) {
	Header(w, fmt.Sprintf("%s (%d)", title, len(ids)))
	if len(ids) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}

	t := uitable.New()
	t.MaxColWidth = 30
	row := make([]interface{}, 0, partitionColumns)
	for _, id := range ids {
		row = append(row, string(id))
		if len(row) == partitionColumns {
			t.AddRow(row...)
			row = row[:0]
		}
	}
	if len(row) > 0 {
		t.AddRow(row...)
	}
	fmt.Fprintln(w, t)
}

// Outcome prints the batch summary and the first failures.
func Outcome(w io.Writer, o *batch.Outcome) {
	t := uitable.New()
	t.AddRow("TOTAL", o.Total)
	t.AddRow("SUCCESSFUL", len(o.Successful))
	t.AddRow("FAILED", len(o.Failed))
	t.AddRow("ELAPSED", o.Elapsed().Round(time.Second))
	Header(w, "Batch "+string(o.Kind)+" finished")
	fmt.Fprintln(w, t)

	if len(o.Failed) == 0 {
		return
	}

	ft := uitable.New()
	ft.Wrap = true
	ft.AddRow("TARGET", "REASON")
	for i, f := range o.Failed {
		if i == MaxListedFailures {
			ft.AddRow("...", fmt.Sprintf("and %d more", len(o.Failed)-MaxListedFailures))
			break
		}
		ft.AddRow(f.Target.String(), f.Message)
	}
	fmt.Fprintln(w, ft)
}

func User(w io.Writer, r *profile.UserReport) {
	u := r.User
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	t.AddRow("LOGIN", u.Login)
	t.AddRow("NAME", u.Name)
	t.AddRow("BIO", u.Bio)
	t.AddRow("COMPANY", u.Company)
	t.AddRow("LOCATION", u.Location)
	t.AddRow("BLOG", u.Blog)
	t.AddRow("FOLLOWERS", humanize.Comma(int64(u.Followers)))
	t.AddRow("FOLLOWING", humanize.Comma(int64(u.Following)))
	t.AddRow("PUBLIC REPOS", u.PublicRepos)
	t.AddRow("TOTAL STARS", humanize.Comma(int64(r.TotalStars)))
	t.AddRow("TOTAL FORKS", humanize.Comma(int64(r.TotalForks)))
	t.AddRow("AVG STARS", fmt.Sprintf("%.1f", r.AverageStars))
	t.AddRow("JOINED", humanize.Time(u.Created))
	t.AddRow("URL", u.URL)
	Header(w, "User "+u.Login)
	fmt.Fprintln(w, t)

	languages(w, "Top languages (by repositories)", r.Languages, false)
}

func Repository(w io.Writer, r *profile.RepositoryReport) {
	rp := r.Repository
	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	t.AddRow("NAME", rp.FullName)
	t.AddRow("DESCRIPTION", rp.Description)
	t.AddRow("LANGUAGE", rp.Language)
	t.AddRow("STARS", humanize.Comma(int64(rp.Stars)))
	t.AddRow("FORKS", humanize.Comma(int64(rp.Forks)))
	t.AddRow("WATCHERS", humanize.Comma(int64(rp.Watchers)))
	t.AddRow("OPEN ISSUES", humanize.Comma(int64(rp.OpenIssues)))
	t.AddRow("SIZE", humanize.Bytes(uint64(rp.Size)*1024))
	t.AddRow("LICENSE", rp.License)
	t.AddRow("DEFAULT BRANCH", rp.DefaultBranch)
	if len(rp.Topics) > 0 {
		t.AddRow("TOPICS", strings.Join(rp.Topics, ", "))
	}
	t.AddRow("CREATED", humanize.Time(rp.Created))
	t.AddRow("PUSHED", humanize.Time(rp.Pushed))
	t.AddRow("URL", rp.URL)
	Header(w, "Repository "+rp.FullName)
	fmt.Fprintln(w, t)

	languages(w, "Languages", r.Languages, true)

	if len(r.Contributors) > 0 {
		ct := uitable.New()
		ct.AddRow("CONTRIBUTOR", "COMMITS")
		for _, c := range r.Contributors {
			ct.AddRow(c.Login, humanize.Comma(int64(c.Contributions)))
		}
		Header(w, "Top contributors")
		fmt.Fprintln(w, ct)
	}
}

func languages(w io.Writer, title string, ls []profile.LanguageCount, share bool) {
	if len(ls) == 0 {
		return
	}

	t := uitable.New()
	for _, l := range ls {
		if share {
			t.AddRow(l.Language, fmt.Sprintf("%.1f%%", l.Percent))
		} else {
			t.AddRow(l.Language, l.Count)
		}
	}
	Header(w, title)
	fmt.Fprintln(w, t)
}
