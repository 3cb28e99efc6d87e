package cmd

import (
	"github.com/spf13/cobra"

	"modecitation.dev/pkg/modecitation/internal/domain"
)

// rulesCmd represents the rules command.
var rulesCmd = newRulesCmd()

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List and check the rules of a rules file",
		Long:  rulesLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := rulesPath()
			if err != nil {
				return err
			}

			wf, err := workflowFactory(cmd, workflowSettings{})
			if err != nil {
				return err
			}

			return wf.ListRules(cmd.Context(), domain.RulesArgs{Rules: rules})
		},
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
