package tmpl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/tmpl/pkg/config"
	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/style"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		sources []string
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "init [dir]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.init")

			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.ManifestNames[0])

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.ErrTargetExists, MsgErrManifestExists, path).
					WithDetail("path", path)
			}

			content, err := config.Generate(sources...)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, content, 0644); err != nil {
				return err
			}

			logger.Info().Str("path", path).Msg("Manifest created")
			fmt.Fprint(cmd.OutOrStdout(), style.Render("Success", fmt.Sprintf(MsgManifestCreated, path)))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, MsgFlagInitSrc)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}
