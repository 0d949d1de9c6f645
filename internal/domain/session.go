package domain

import "fmt"

// Session is the branch and commit HEAD pointed at when a release session started.
type Session struct {
	Branch string
	Commit string
}

// ShortCommit returns the first seven characters of the commit hash.
func (s Session) ShortCommit() string {
	if len(s.Commit) > 7 {
		return s.Commit[:7]
	}
	return s.Commit
}

func (s Session) String() string {
	return fmt.Sprintf("%s@%s", s.Branch, s.ShortCommit())
}
