// Package models defines the request and result types shared by the workspace
// tools. Failure is part of every operation's return value: tools hand back a
// tagged Result instead of letting errors cross the operation boundary.
package models

import (
	"fmt"
	"time"
)

// Result is the uniform outcome of a tool operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Ok returns a successful Result with the given message.
func Ok(message string) Result {
	return Result{Success: true, Message: message}
}

// Okf returns a successful Result with a formatted message.
func Okf(format string, args ...any) Result {
	return Ok(fmt.Sprintf(format, args...))
}

// OkWithData returns a successful Result carrying a data payload.
func OkWithData(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail returns a failed Result with the given message.
func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

// Failf returns a failed Result with a formatted message.
func Failf(format string, args ...any) Result {
	return Fail(fmt.Sprintf(format, args...))
}

// DirEntry is one entry of a directory listing payload.
type DirEntry struct {
	Name     string    `json:"name"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// StrReplaceData is the payload of a successful str_replace: a bounded context
// window around the edit and the 0-based line the edit starts on.
type StrReplaceData struct {
	Snippet  string `json:"snippet"`
	EditLine int    `json:"edit_line"`
}

// --- File tool requests ---

type CreateFileRequest struct {
	FilePath     string `json:"file_path" mapstructure:"file_path" jsonschema:"required,description=Path to the file to be created, relative to the workspace root"`
	FileContents string `json:"file_contents" mapstructure:"file_contents" jsonschema:"required,description=The content to write to the file"`
	Permissions  string `json:"permissions,omitempty" mapstructure:"permissions" jsonschema:"description=File permissions in octal format (default 644)"`
}

func (r CreateFileRequest) Validate() error {
	if r.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	return nil
}

type FullFileRewriteRequest struct {
	FilePath     string `json:"file_path" mapstructure:"file_path" jsonschema:"required,description=Path to the file to be rewritten, relative to the workspace root"`
	FileContents string `json:"file_contents" mapstructure:"file_contents" jsonschema:"required,description=The new content replacing all existing content"`
	Permissions  string `json:"permissions,omitempty" mapstructure:"permissions" jsonschema:"description=File permissions in octal format (default 644)"`
}

func (r FullFileRewriteRequest) Validate() error {
	if r.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	return nil
}

type DeleteFileRequest struct {
	FilePath string `json:"file_path" mapstructure:"file_path" jsonschema:"required,description=Path to the file to be deleted, relative to the workspace root"`
}

func (r DeleteFileRequest) Validate() error {
	if r.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	return nil
}

type StrReplaceRequest struct {
	FilePath string `json:"file_path" mapstructure:"file_path" jsonschema:"required,description=Path to the target file, relative to the workspace root"`
	OldStr   string `json:"old_str" mapstructure:"old_str" jsonschema:"required,description=Text to be replaced (must appear exactly once)"`
	NewStr   string `json:"new_str" mapstructure:"new_str" jsonschema:"required,description=Replacement text"`
}

func (r StrReplaceRequest) Validate() error {
	if r.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	if r.OldStr == "" {
		return fmt.Errorf("old_str is required")
	}
	return nil
}

type CreateFolderRequest struct {
	FolderPath string `json:"folder_path" mapstructure:"folder_path" jsonschema:"required,description=Path to the folder to be created, relative to the workspace root"`
}

func (r CreateFolderRequest) Validate() error {
	if r.FolderPath == "" {
		return fmt.Errorf("folder_path is required")
	}
	return nil
}

type DeleteFolderRequest struct {
	FolderPath string `json:"folder_path" mapstructure:"folder_path" jsonschema:"required,description=Path to the folder to be deleted, relative to the workspace root"`
}

func (r DeleteFolderRequest) Validate() error {
	if r.FolderPath == "" {
		return fmt.Errorf("folder_path is required")
	}
	return nil
}

type ListFilesRequest struct {
	Path string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to the directory to list, relative to the workspace root"`
}

func (r ListFilesRequest) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// GetWorkspaceStateRequest has no arguments; the snapshot always covers the
// whole workspace root.
type GetWorkspaceStateRequest struct{}

// --- Git tool requests ---

type GitCloneRequest struct {
	RepoURL   string `json:"repo_url" mapstructure:"repo_url" jsonschema:"required,description=URL of the Git repository to clone"`
	Path      string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to clone the repository to, relative to the workspace root"`
	Branch    string `json:"branch,omitempty" mapstructure:"branch" jsonschema:"description=Branch to clone (default: main)"`
	AuthToken string `json:"auth_token,omitempty" mapstructure:"auth_token" jsonschema:"description=Authentication token for private repositories"`
}

func (r GitCloneRequest) Validate() error {
	if r.RepoURL == "" {
		return fmt.Errorf("repo_url is required")
	}
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type GitRepoRequest struct {
	Path string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to the repository, relative to the workspace root"`
}

func (r GitRepoRequest) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

type GitAddRequest struct {
	Path     string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to the repository, relative to the workspace root"`
	FilePath string `json:"file_path" mapstructure:"file_path" jsonschema:"required,description=Path to the file to add, relative to the workspace root"`
}

func (r GitAddRequest) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if r.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	return nil
}

type GitCommitRequest struct {
	Path    string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to the repository, relative to the workspace root"`
	Message string `json:"message" mapstructure:"message" jsonschema:"required,description=Commit message"`
}

func (r GitCommitRequest) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if r.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

type GitBranchRequest struct {
	Path       string `json:"path" mapstructure:"path" jsonschema:"required,description=Path to the repository, relative to the workspace root"`
	BranchName string `json:"branch_name" mapstructure:"branch_name" jsonschema:"required,description=Name of the branch"`
}

func (r GitBranchRequest) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("path is required")
	}
	if r.BranchName == "" {
		return fmt.Errorf("branch_name is required")
	}
	return nil
}
