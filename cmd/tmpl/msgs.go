package tmpl

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Scaffold projects from layered templates"
	MsgListShort       = "List the files of the template"
	MsgWriteShort      = "Render the template into a directory"
	MsgInitShort       = "Create a starter tmpl.toml manifest"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Print the man page"

	// Status messages
	MsgNoFiles          = "No template files found."
	MsgFilesFormat      = "%d file(s) in template\n"
	MsgWrittenFormat    = "Wrote %d file(s) to %s\n"
	MsgManifestCreated  = "Created %s\n"
	MsgVersionFormat    = "tmpl version %s\n"
	MsgVersionCommit    = "  commit: %s\n"
	MsgVersionBuilt     = "  built:  %s\n"
	MsgBinaryMarker     = "binary"
	MsgTextMarker       = "text"
	MsgTableHeaderPath  = "PATH"
	MsgTableHeaderBase  = "BASE"
	MsgTableHeaderKind  = "KIND"
	MsgErrorPrefix      = "Error: "
	MsgErrorDetailEntry = "  %s: %v"

	// Error messages
	MsgErrLoadConfig     = "failed to load manifest: %w"
	MsgErrListFiles      = "failed to list template files: %w"
	MsgErrWriteTemplate  = "failed to write template: %w"
	MsgErrNoTarget       = "no target directory given and none configured in the manifest"
	MsgErrInvalidVar     = "invalid --var %q, expected name=value"
	MsgErrManifestExists = "manifest already exists: %s (use --force to overwrite)"
	MsgErrOutputFormat   = "unknown output format %q, expected table, yaml or json"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Path to the manifest (default: tmpl.toml or tmpl.yaml in the current directory)"
	MsgFlagSource  = "Add a source directory after the manifest sources (repeatable)"
	MsgFlagOutput  = "Output format: table, yaml or json"
	MsgFlagVar     = "Set a template variable as name=value (repeatable)"
	MsgFlagReplace = "Replace the target directory if it exists"
	MsgFlagForce   = "Overwrite an existing manifest"
	MsgFlagInitSrc = "Source directory to list in the manifest (repeatable)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/write-long.txt
	msgWriteLongRaw string
	MsgWriteLong    = strings.TrimSpace(msgWriteLongRaw)

	//go:embed msgs/write-example.txt
	msgWriteExampleRaw string
	MsgWriteExample    = strings.TrimRight(msgWriteExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
