package organizer

import (
	git "github.com/go-git/go-git/v6"
)

// CheckWorkingTree inspects the version-control state of the target tree.
//
// Moves are not transactional: if the process dies mid-batch, documents
// already moved stay moved. A clean git worktree is what makes that
// recoverable, so ApplyMoves surfaces this status as a warning. It is never
// a hard stop; plenty of documentation trees live outside version control.
func CheckWorkingTree(root string) VCSStatus {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return VCSStatus{}
	}

	wt, err := repo.Worktree()
	if err != nil {
		return VCSStatus{InRepository: true}
	}

	status, err := wt.Status()
	if err != nil {
		return VCSStatus{InRepository: true}
	}

	return VCSStatus{InRepository: true, Clean: status.IsClean()}
}
