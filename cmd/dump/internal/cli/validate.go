package cli

import (
	"fmt"
	"os"

	dump "github.com/codecity-go/heapdump"
	"github.com/codecity-go/heapdump/config"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "check a config spec without writing anything (SPEC_FULL.md's --validate dry run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(specPath)
			if err != nil {
				return err
			}
			spec, err := config.LoadSpec(data)
			if err != nil {
				return err
			}

			ip := demoInterpreter()
			if err := dump.Validate(ip, spec); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "spec OK")
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to the config spec YAML file")
	cmd.MarkFlagRequired("spec")
	return cmd
}
