package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LexxFedoroff/cargo/internal/manifest"
	"github.com/LexxFedoroff/cargo/internal/outcome"
)

type projectLocation struct {
	Root string `json:"root"`
}

func newLocateProjectCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var messageFormat string

	cmd := &cobra.Command{
		Use:         "locate-project",
		Short:       "Print a JSON representation of a Cargo.toml file's location",
		Args:        noArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if messageFormat != "json" && messageFormat != "plain" {
				return &outcome.UsageError{
					Message: fmt.Sprintf("invalid message format specifier: `%s`", messageFormat),
					Help:    cmd.UsageString(),
				}
			}
			root, err := manifest.FindRoot("", manifestPath)
			if err != nil {
				return outcome.Fail(err)
			}
			out := cmd.OutOrStdout()
			if messageFormat == "plain" {
				_, err = fmt.Fprintln(out, root)
				return err
			}
			return json.NewEncoder(out).Encode(projectLocation{Root: root})
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest-path", "", "Path to the manifest to locate")
	cmd.Flags().StringVar(&messageFormat, "message-format", "json", "Output representation: json or plain")
	return cmd
}
