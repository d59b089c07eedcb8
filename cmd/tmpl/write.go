package tmpl

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/logging"
	"github.com/arthur-debert/tmpl/pkg/style"
	"github.com/spf13/cobra"
)

func newWriteCmd(opts *globalOptions) *cobra.Command {
	var (
		sources []string
		vars    []string
		replace bool
	)

	cmd := &cobra.Command{
		Use:     "write [target]",
		Short:   MsgWriteShort,
		Long:    MsgWriteLong,
		Example: MsgWriteExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.write")

			overrides, err := parseVars(vars)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("replace") {
				overrides["target.replace"] = replace
			}

			cfg, err := loadConfig(opts, overrides)
			if err != nil {
				return err
			}

			writeOpts := cfg.WriteOptions()
			if len(args) > 0 {
				if writeOpts.TargetDir, err = filepath.Abs(args[0]); err != nil {
					return err
				}
			}
			if writeOpts.TargetDir == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoTarget)
			}

			tmpl := cfg.Template().AddDir(sources...)
			logger.Info().
				Str("target", writeOpts.TargetDir).
				Bool("replace", writeOpts.Replace).
				Int("variables", len(writeOpts.Variables)).
				Msg("Writing template")

			artifacts, err := tmpl.Write(cmd.Context(), writeOpts)
			if err != nil {
				return fmt.Errorf(MsgErrWriteTemplate, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, style.Render("Success", fmt.Sprintf(MsgWrittenFormat, len(artifacts), writeOpts.TargetDir)))
			for _, a := range artifacts {
				fmt.Fprintln(out, style.Render("Indent", a.File.Path))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "s", nil, MsgFlagSource)
	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().BoolVar(&replace, "replace", false, MsgFlagReplace)
	return cmd
}

// parseVars turns name=value flags into koanf overrides under "variables".
func parseVars(vars []string) (map[string]any, error) {
	overrides := make(map[string]any, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrInvalidVar, v)
		}
		overrides["variables."+strings.ToLower(name)] = value
	}
	return overrides, nil
}
