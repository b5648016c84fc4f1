package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const syncDirectoryMessageType = "kb.markdown.sync_directory"

// SyncDirectoryCommand triggers a synchronizer pass over the Markdown files
// under the provided Directory, relative to the configured content root. An
// empty Directory syncs the root itself.
type SyncDirectoryCommand struct {
	// Directory selects the subdirectory of the content root to reconcile.
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate rejects directory values that escape the content root.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(func(value any) error {
			dir := strings.TrimSpace(value.(string))
			if strings.Contains(dir, "..") {
				return validation.NewError("kb.markdown.sync_directory.directory_invalid", "directory must not contain parent references")
			}
			return nil
		})),
	)
}
