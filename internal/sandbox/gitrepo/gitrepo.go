// Package gitrepo implements the sandbox git collaborator with go-git,
// operating on repositories stored under the workspace root.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/jmallory/sandkit/internal/sandbox"
)

const defaultRemote = "origin"

// Service implements sandbox.Git. Commits are authored with the configured
// name and email.
type Service struct {
	AuthorName  string
	AuthorEmail string
}

// NewService returns a Service with the default commit author.
func NewService(authorName, authorEmail string) *Service {
	if authorName == "" {
		authorName = "sandkit"
	}
	if authorEmail == "" {
		authorEmail = "sandkit@localhost"
	}
	return &Service{AuthorName: authorName, AuthorEmail: authorEmail}
}

func (s *Service) Clone(ctx context.Context, opts sandbox.CloneOptions) error {
	cloneOpts := &git.CloneOptions{URL: opts.URL}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		cloneOpts.SingleBranch = true
	}
	if opts.AuthToken != "" {
		// Token auth over HTTPS; the username is ignored by the common hosts.
		cloneOpts.Auth = &githttp.BasicAuth{Username: "git", Password: opts.AuthToken}
	}

	if _, err := git.PlainCloneContext(ctx, opts.Path, false, cloneOpts); err != nil {
		return fmt.Errorf("failed to clone %s: %w", opts.URL, err)
	}
	return nil
}

func (s *Service) Status(_ context.Context, path string) (string, error) {
	wt, err := openWorktree(path)
	if err != nil {
		return "", err
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to get status: %w", err)
	}
	if status.IsClean() {
		return "working tree clean", nil
	}
	return status.String(), nil
}

func (s *Service) Add(_ context.Context, path, filePath string) error {
	wt, err := openWorktree(path)
	if err != nil {
		return err
	}
	if _, err := wt.Add(filePath); err != nil {
		return fmt.Errorf("failed to add %s: %w", filePath, err)
	}
	return nil
}

func (s *Service) Commit(_ context.Context, path, message string) error {
	wt, err := openWorktree(path)
	if err != nil {
		return err
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  s.AuthorName,
			Email: s.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Service) Push(ctx context.Context, path, branch string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	pushOpts := &git.PushOptions{RemoteName: defaultRemote}
	if branch != "" {
		spec := gitcfg.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
		pushOpts.RefSpecs = []gitcfg.RefSpec{spec}
	}

	if err := repo.PushContext(ctx, pushOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}

func (s *Service) Pull(ctx context.Context, path, branch string) error {
	wt, err := openWorktree(path)
	if err != nil {
		return err
	}

	pullOpts := &git.PullOptions{RemoteName: defaultRemote}
	if branch != "" {
		pullOpts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		pullOpts.SingleBranch = true
	}

	if err := wt.PullContext(ctx, pullOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}

func (s *Service) Fetch(ctx context.Context, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{RemoteName: defaultRemote})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	return nil
}

// Merge performs a fast-forward merge of branch into the current branch.
// Diverged histories are rejected; merge commits are not synthesized.
func (s *Service) Merge(_ context.Context, path, branch string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	targetRef, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}

	if head.Hash() == targetRef.Hash() {
		return nil
	}

	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	targetCommit, err := repo.CommitObject(targetRef.Hash())
	if err != nil {
		return fmt.Errorf("failed to load commit for %s: %w", branch, err)
	}

	fastForward, err := headCommit.IsAncestor(targetCommit)
	if err != nil {
		return fmt.Errorf("failed to compare histories: %w", err)
	}
	if !fastForward {
		return fmt.Errorf("cannot merge %s: histories have diverged, only fast-forward merges are supported", branch)
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(head.Name(), targetRef.Hash())); err != nil {
		return fmt.Errorf("failed to advance %s: %w", head.Name().Short(), err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Mode: git.HardReset, Commit: targetRef.Hash()}); err != nil {
		return fmt.Errorf("failed to update worktree: %w", err)
	}
	return nil
}

func (s *Service) Checkout(_ context.Context, path, branch string) error {
	wt, err := openWorktree(path)
	if err != nil {
		return err
	}

	err = wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)})
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

func (s *Service) CreateBranch(_ context.Context, path, branch string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), head.Hash())
	if err := repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

func openWorktree(path string) (*git.Worktree, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	return wt, nil
}
