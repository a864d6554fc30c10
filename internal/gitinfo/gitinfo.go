// Package gitinfo takes best-effort snapshots of a project's git state,
// used to stamp iteration records with provenance.
package gitinfo

import (
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Snapshot describes the repository at a point in time.
type Snapshot struct {
	Branch string
	Commit string
	Dirty  bool
}

// Capture returns a snapshot of the repository containing dir, or an error
// if dir is not inside a git repository. Callers treat errors as "no git
// info" rather than failures.
func Capture(dir string) (*Snapshot, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open git repo at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	snap := &Snapshot{
		Branch: head.Name().Short(),
		Commit: shortHash(head.Hash().String()),
	}

	wt, err := repo.Worktree()
	if err != nil {
		return snap, nil
	}
	status, err := wt.Status()
	if err != nil {
		return snap, nil
	}
	snap.Dirty = !status.IsClean()

	return snap, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
