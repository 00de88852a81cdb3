package github

import (
	"time"

	"followback/internal/domain/profile"
)

type ghUser struct {
	Login           string    `json:"login"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	Location        string    `json:"location"`
	Email           string    `json:"email"`
	Hireable        bool      `json:"hireable"`
	Bio             string    `json:"bio"`
	TwitterUsername string    `json:"twitter_username"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	HTMLURL         string    `json:"html_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (u *ghUser) toEntity() *profile.User {
	return &profile.User{
		Login:       u.Login,
		Name:        u.Name,
		Company:     u.Company,
		Blog:        u.Blog,
		Location:    u.Location,
		Email:       u.Email,
		Bio:         u.Bio,
		Twitter:     u.TwitterUsername,
		Hireable:    u.Hireable,
		PublicRepos: u.PublicRepos,
		PublicGists: u.PublicGists,
		Followers:   u.Followers,
		Following:   u.Following,
		URL:         u.HTMLURL,
		Created:     u.CreatedAt,
		Updated:     u.UpdatedAt,
	}
}

type ghRepository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
	Description   string   `json:"description"`
	Language      string   `json:"language"`
	HTMLURL       string   `json:"html_url"`
	Homepage      string   `json:"homepage"`
	DefaultBranch string   `json:"default_branch"`
	Topics        []string `json:"topics"`
	Stars         int      `json:"stargazers_count"`
	Watchers      int      `json:"watchers_count"`
	Forks         int      `json:"forks_count"`
	OpenIssues    int      `json:"open_issues_count"`
	Size          int      `json:"size"`
	Archived      bool     `json:"archived"`
	Fork          bool     `json:"fork"`
	Parent        *struct {
		FullName string `json:"full_name"`
	} `json:"parent"`
	License *struct {
		Name string `json:"name"`
	} `json:"license"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PushedAt  time.Time `json:"pushed_at"`
}

func (r *ghRepository) toEntity() *profile.Repository {
	rp := &profile.Repository{
		Name:          r.Name,
		FullName:      r.FullName,
		Owner:         r.Owner.Login,
		Description:   r.Description,
		Language:      r.Language,
		URL:           r.HTMLURL,
		Homepage:      r.Homepage,
		DefaultBranch: r.DefaultBranch,
		Topics:        r.Topics,
		Stars:         r.Stars,
		Watchers:      r.Watchers,
		Forks:         r.Forks,
		OpenIssues:    r.OpenIssues,
		Size:          r.Size,
		Archived:      r.Archived,
		Fork:          r.Fork,
		Created:       r.CreatedAt,
		Updated:       r.UpdatedAt,
		Pushed:        r.PushedAt,
	}
	if r.Parent != nil {
		rp.Parent = r.Parent.FullName
	}
	if r.License != nil {
		rp.License = r.License.Name
	}

	return rp
}

type ghContributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}
