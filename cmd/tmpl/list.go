package tmpl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/style"
	"github.com/arthur-debert/tmpl/pkg/template"
	"github.com/arthur-debert/tmpl/pkg/types"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// listEntry is the serialized form of a resolved file.
type listEntry struct {
	Path   string `json:"path" yaml:"path"`
	Base   string `json:"base" yaml:"base"`
	Binary bool   `json:"binary" yaml:"binary"`
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		sources []string
		output  string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.list")

			cfg, err := loadConfig(opts, nil)
			if err != nil {
				return err
			}
			tmpl := cfg.Template().AddDir(sources...)

			logger.Info().Int("sources", len(tmpl.Sources())).Msg("Listing template files")

			files, err := tmpl.Files(cmd.Context(), template.FilesOptions{})
			if err != nil {
				return fmt.Errorf(MsgErrListFiles, err)
			}
			return renderFiles(cmd.OutOrStdout(), files, output)
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, MsgFlagSource)
	cmd.Flags().StringVarP(&output, "output", "o", "table", MsgFlagOutput)
	return cmd
}

func renderFiles(out io.Writer, files []types.File, format string) error {
	entries := make([]listEntry, len(files))
	for i, f := range files {
		entries[i] = listEntry{Path: f.Path, Base: f.Base, Binary: f.IsBinary}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		return renderTable(out, entries)
	default:
		return fmt.Errorf(MsgErrOutputFormat, format)
	}
}

func renderTable(out io.Writer, entries []listEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, style.Render("Muted", MsgNoFiles))
		return err
	}

	data := pterm.TableData{{MsgTableHeaderPath, MsgTableHeaderBase, MsgTableHeaderKind}}
	for _, e := range entries {
		kind := MsgTextMarker
		if e.Binary {
			kind = style.Render("Binary", MsgBinaryMarker)
		}
		data = append(data, []string{style.Render("FilePath", e.Path), e.Base, kind})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, table); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, MsgFilesFormat, len(entries))
	return err
}
