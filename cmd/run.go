package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"modecitation.dev/pkg/modecitation/internal/domain"
	m "modecitation.dev/pkg/modecitation/internal/model"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [sources...]",
		Short: "Apply the quote mode to XML documents",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := rulesPath()
			if err != nil {
				return err
			}

			runArgs := domain.RunArgs{
				Sources:   parseSources(args),
				Rules:     rules,
				Output:    m.Target(viper.GetString(outputFlagName)),
				Reports:   m.Path(viper.GetString(reportsDirConfigKey)),
				Parallel:  viper.GetUint(runParallelConfigKey),
				KeepGoing: viper.GetBool(runKeepGoingConfigKey),
				DryRun:    mustGetBool(cmd, dryRunFlagName),
				Diff:      mustGetBool(cmd, diffFlagName),
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			wf, err := workflowFactory(cmd, workflowSettings{
				documentsOnStdout: runArgs.Output.IsStdout() && !runArgs.DryRun,
				interrupt:         cancel,
			})
			if err != nil {
				return err
			}

			return wf.Run(ctx, runArgs)
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(outputFlagName, "o", defaultOutput, `output file, directory for several sources, or "-" for stdout`)
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), outputFlagName)

	cmd.Flags().String(indentFlagName, defaultOutputIndent, `output layout: "none" keeps the source layout, "indent" indents element-only content`)
	bindFlagToConfig(cmd.Flags().Lookup(indentFlagName), outputIndentKey)

	cmd.Flags().UintP(parallelFlagName, "p", defaultRunParallel, "number of documents processed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelConfigKey)

	cmd.Flags().Bool(keepGoingFlagName, defaultRunKeepGoing, "continue with the next document when one fails")
	bindFlagToConfig(cmd.Flags().Lookup(keepGoingFlagName), runKeepGoingConfigKey)

	cmd.Flags().String(reportsFlagName, defaultReportsDir, "directory receiving a YAML report of the run")
	bindFlagToConfig(cmd.Flags().Lookup(reportsFlagName), reportsDirConfigKey)

	cmd.Flags().Bool(dryRunFlagName, false, "transform without writing any document")
	cmd.Flags().Bool(diffFlagName, false, "show a unified diff of every document")
}

func parseSources(args []string) []m.Source {
	sources := make([]m.Source, 0, len(args))
	for _, arg := range args {
		sources = append(sources, m.Source(arg))
	}

	return sources
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	cobra.CheckErr(err)

	return value
}
