package tools

import (
	"context"
	"strings"

	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/tools/models"
	"github.com/jmallory/sandkit/internal/workspace/pathutil"
)

// defaultCloneBranch is used when a clone request names no branch.
const defaultCloneBranch = "main"

// GitTool executes git operations against the sandbox git collaborator.
// Repository paths are interpreted relative to the workspace root.
type GitTool struct {
	conn *sandbox.Conn
	root string
}

// NewGitTool returns a GitTool over the given connection and workspace root.
func NewGitTool(conn *sandbox.Conn, workspaceRoot string) *GitTool {
	return &GitTool{
		conn: conn,
		root: strings.TrimSuffix(workspaceRoot, "/"),
	}
}

// Clone clones a repository into the workspace, optionally authenticating
// with a token.
func (t *GitTool) Clone(ctx context.Context, req models.GitCloneRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	branch := req.Branch
	if branch == "" {
		branch = defaultCloneBranch
	}

	err := t.conn.Git().Clone(ctx, sandbox.CloneOptions{
		URL:       req.RepoURL,
		Path:      full,
		Branch:    branch,
		AuthToken: req.AuthToken,
	})
	if err != nil {
		return models.Failf("Error cloning repository: %v", err)
	}
	return models.Ok("Repository cloned successfully.")
}

// Status reports the working-tree status of a repository.
func (t *GitTool) Status(ctx context.Context, req models.GitRepoRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	status, err := t.conn.Git().Status(ctx, full)
	if err != nil {
		return models.Failf("Error getting repository status: %v", err)
	}
	return models.OkWithData("Repository status: "+status, status)
}

// Add stages a file in a repository. The file path may be given relative to
// the workspace root or to the repository; it is staged relative to the
// repository either way.
func (t *GitTool) Add(ctx context.Context, req models.GitAddRequest) models.Result {
	repoRel, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	fileRel, err := pathutil.Clean(req.FilePath, t.root)
	if err != nil {
		return models.Failf("Invalid path: %v", err)
	}
	if repoRel != "" {
		fileRel = strings.TrimPrefix(fileRel, repoRel+"/")
	}

	if err := t.conn.Git().Add(ctx, full, fileRel); err != nil {
		return models.Failf("Error adding file to repository: %v", err)
	}
	return models.Ok("File added to repository successfully.")
}

// Commit records staged changes.
func (t *GitTool) Commit(ctx context.Context, req models.GitCommitRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Commit(ctx, full, req.Message); err != nil {
		return models.Failf("Error committing changes: %v", err)
	}
	return models.Ok("Changes committed successfully.")
}

// Push publishes a branch to the remote.
func (t *GitTool) Push(ctx context.Context, req models.GitBranchRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Push(ctx, full, req.BranchName); err != nil {
		return models.Failf("Error pushing changes: %v", err)
	}
	return models.Ok("Changes pushed successfully.")
}

// Pull integrates remote changes for a branch.
func (t *GitTool) Pull(ctx context.Context, req models.GitBranchRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Pull(ctx, full, req.BranchName); err != nil {
		return models.Failf("Error pulling changes: %v", err)
	}
	return models.Ok("Changes pulled successfully.")
}

// Fetch downloads remote refs without integrating them.
func (t *GitTool) Fetch(ctx context.Context, req models.GitRepoRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Fetch(ctx, full); err != nil {
		return models.Failf("Error fetching changes: %v", err)
	}
	return models.Ok("Changes fetched successfully.")
}

// Merge merges a branch into the current branch.
func (t *GitTool) Merge(ctx context.Context, req models.GitBranchRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Merge(ctx, full, req.BranchName); err != nil {
		return models.Failf("Error merging branch: %v", err)
	}
	return models.Okf("Branch '%s' merged successfully.", req.BranchName)
}

// Checkout switches the working tree to a branch.
func (t *GitTool) Checkout(ctx context.Context, req models.GitBranchRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().Checkout(ctx, full, req.BranchName); err != nil {
		return models.Failf("Error checking out branch: %v", err)
	}
	return models.Okf("Branch '%s' checked out successfully.", req.BranchName)
}

// CreateBranch creates a new branch at the current HEAD without switching to it.
func (t *GitTool) CreateBranch(ctx context.Context, req models.GitBranchRequest) models.Result {
	_, full, res := t.resolve(ctx, req.Path)
	if res != nil {
		return *res
	}

	if err := t.conn.Git().CreateBranch(ctx, full, req.BranchName); err != nil {
		return models.Failf("Error creating branch: %v", err)
	}
	return models.Okf("Branch '%s' created successfully.", req.BranchName)
}

func (t *GitTool) resolve(ctx context.Context, rawPath string) (rel, full string, failure *models.Result) {
	if err := t.conn.Ensure(ctx); err != nil {
		res := models.Failf("Error connecting to sandbox: %v", err)
		return "", "", &res
	}

	rel, err := pathutil.Clean(rawPath, t.root)
	if err != nil {
		res := models.Failf("Invalid path: %v", err)
		return "", "", &res
	}

	full = t.root
	if rel != "" {
		full = t.root + "/" + rel
	}
	return rel, full, nil
}
