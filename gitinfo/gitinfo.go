// Package gitinfo resolves repository metadata for diagram titles: the repo
// root a playbook lives in and a "date-revision" label for the checkout.
package gitinfo

import (
	"fmt"

	"github.com/ansigraph/ansigraph/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// RepoRoot walks up from dir to the enclosing git worktree root.
func RepoRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Wrapf(err, "no git repository found from %s", dir)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve worktree")
	}
	return wt.Filesystem.Root(), nil
}

// CheckoutLabel builds the "<commit date>-<revision>" identifier used in
// diagram titles and file names. Revision is a tag name when one points at
// HEAD, the abbreviated hash otherwise.
func CheckoutLabel(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", errors.Wrapf(err, "no git repository found from %s", dir)
	}

	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve HEAD")
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return "", errors.Wrap(err, "failed to read HEAD commit")
	}

	revision := head.Hash().String()[:7]
	if tag, ok := tagAt(repo, head.Hash()); ok {
		revision = tag
	}

	return fmt.Sprintf("%s-%s", commit.Committer.When.Format("2006-01-02"), revision), nil
}

// tagAt returns the name of a tag pointing at hash, if any. Annotated tags
// are followed to their target commit.
func tagAt(repo *git.Repository, hash plumbing.Hash) (string, bool) {
	tags, err := repo.Tags()
	if err != nil {
		return "", false
	}
	defer tags.Close()

	found := ""
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tagObj, err := repo.TagObject(ref.Hash()); err == nil {
			target = tagObj.Target
		}
		if target == hash && found == "" {
			found = ref.Name().Short()
		}
		return nil
	})
	return found, found != ""
}
