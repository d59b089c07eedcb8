package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/arthur-debert/tmpl/cmd/tmpl"
	"github.com/arthur-debert/tmpl/pkg/errors"
	"github.com/arthur-debert/tmpl/pkg/style"
)

func main() {
	rootCmd := tmpl.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := style.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(tmpl.MsgErrorPrefix+err.Error()))

		details := errors.GetErrorDetails(err)
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintln(os.Stderr, style.Render("Muted", fmt.Sprintf(tmpl.MsgErrorDetailEntry, k, details[k])))
		}

		os.Exit(1)
	}
}
