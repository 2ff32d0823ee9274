package registry

import (
	"context"

	"github.com/jmallory/sandkit/internal/sandbox"
	"github.com/jmallory/sandkit/internal/tools"
	"github.com/jmallory/sandkit/internal/tools/email"
	"github.com/jmallory/sandkit/internal/tools/models"
)

// Default builds the full tool registry over one sandbox connection: file and
// folder operations, git operations and the email stub.
func Default(conn *sandbox.Conn, workspaceRoot string) *Registry {
	r := New()

	files := tools.NewFilesTool(conn, workspaceRoot)
	git := tools.NewGitTool(conn, workspaceRoot)
	mail := email.NewTool()

	r.Register(NewAdapter(
		"create_file",
		"Create a new file with the provided contents at a given path in the workspace",
		files.CreateFile,
	))
	r.Register(NewAdapter(
		"full_file_rewrite",
		"Completely rewrite an existing file with new content",
		files.FullFileRewrite,
	))
	r.Register(NewAdapter(
		"delete_file",
		"Delete a file at the given path",
		files.DeleteFile,
	))
	r.Register(NewAdapter(
		"str_replace",
		"Replace specific text in a file. The old string must appear exactly once",
		files.StrReplace,
	))
	r.Register(NewAdapter(
		"create_folder",
		"Create a new folder at the given path in the workspace",
		files.CreateFolder,
	))
	r.Register(NewAdapter(
		"delete_folder",
		"Delete a folder at the given path and all its contents",
		files.DeleteFolder,
	))
	r.Register(NewAdapter(
		"list_files",
		"List the files and folders directly under a directory",
		files.ListFiles,
	))
	r.Register(NewAdapter(
		"get_workspace_state",
		"Get the contents of all visible text files in the workspace",
		files.GetWorkspaceState,
	))

	r.Register(NewAdapter(
		"clone_git_repo",
		"Clone a public Git repository into the workspace",
		func(ctx context.Context, req models.GitCloneRequest) models.Result {
			req.AuthToken = ""
			return git.Clone(ctx, req)
		},
	))
	r.Register(NewAdapter(
		"clone_git_repo_with_auth",
		"Clone a private Git repository into the workspace using an authentication token",
		git.Clone,
	))
	r.Register(NewAdapter(
		"get_repo_status",
		"Get the working-tree status of a Git repository in the workspace",
		git.Status,
	))
	r.Register(NewAdapter(
		"git_add",
		"Stage a file in a Git repository in the workspace",
		git.Add,
	))
	r.Register(NewAdapter(
		"git_commit",
		"Commit staged changes in a Git repository in the workspace",
		git.Commit,
	))
	r.Register(NewAdapter(
		"git_push",
		"Push a branch of a workspace repository to its remote",
		git.Push,
	))
	r.Register(NewAdapter(
		"git_pull",
		"Pull remote changes for a branch of a workspace repository",
		git.Pull,
	))
	r.Register(NewAdapter(
		"git_fetch",
		"Fetch remote refs for a workspace repository without integrating them",
		git.Fetch,
	))
	r.Register(NewAdapter(
		"git_merge",
		"Merge a branch into the current branch of a workspace repository",
		git.Merge,
	))
	r.Register(NewAdapter(
		"git_checkout",
		"Check out a branch of a workspace repository",
		git.Checkout,
	))
	r.Register(NewAdapter(
		"git_create_branch",
		"Create a new branch in a workspace repository at the current HEAD",
		git.CreateBranch,
	))

	r.Register(NewAdapter(
		"send_email",
		"Send an email on the user's behalf",
		mail.Send,
	))
	r.Register(NewAdapter(
		"list_emails",
		"List emails from the user's inbox",
		mail.List,
	))
	r.Register(NewAdapter(
		"read_email",
		"Read a specific email from the user's inbox by ID",
		mail.Read,
	))

	return r
}
