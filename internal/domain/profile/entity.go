package profile

import "time"

type User struct {
	Login       string
	Name        string
	Company     string
	Blog        string
	Location    string
	Email       string
	Bio         string
	Twitter     string
	Hireable    bool
	PublicRepos int
	PublicGists int
	Followers   int
	Following   int
	URL         string
	Created     time.Time
	Updated     time.Time
}

type Repository struct {
	Name          string
	FullName      string
	Owner         string
	Description   string
	Language      string
	URL           string
	Homepage      string
	DefaultBranch string
	License       string
	Topics        []string
	Stars         int
	Watchers      int
	Forks         int
	OpenIssues    int
	Size          int
	Archived      bool
	Fork          bool
	Parent        string
	Created       time.Time
	Updated       time.Time
	Pushed        time.Time
}

type Contributor struct {
	Login         string
	Contributions int
}
