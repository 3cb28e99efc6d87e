// Package cmd provides the root command and CLI setup for modecitation.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"modecitation.dev/pkg/modecitation/internal/adapter"
	"modecitation.dev/pkg/modecitation/internal/controller"
	"modecitation.dev/pkg/modecitation/internal/domain"
	m "modecitation.dev/pkg/modecitation/internal/model"
	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

// workflowSettings carries what the workflow wiring needs from the command line.
type workflowSettings struct {
	// documentsOnStdout routes progress to stderr so stdout only holds XML.
	documentsOnStdout bool
	// interrupt is called when the user aborts the interactive display.
	interrupt context.CancelFunc
}

// workflowFactory builds the workflow once flags and configuration are known.
var workflowFactory = newWorkflow

// logFileFlag overrides the log file path.
var logFileFlag string

const rulesHelp = `Rules files are JSON or YAML documents with a top-level "all" list:

  {"all": [{"desc": "paragraphs", "xpath": "//p"}]}

Each xpath selects the zones where « ... » spans become <q class="containsQuotes">.`

const rootLongDescription = `modecitation applies the quote mode to editorial XML documents: text
between French guillemets is wrapped in <q class="containsQuotes"> elements
and bold, italic or underlined quotations are turned into the same element.

` + rulesHelp

const runLongDescription = `Apply the quote mode to the given XML documents (paths or http(s) URLs).

A single document is written to --output ("-" for stdout). Several documents
require --output to be a directory; each one keeps its base name.

` + rulesHelp

const rulesLongDescription = `Show the rules of a rules file and check that every XPath expression compiles.

` + rulesHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "modecitation",
		Short:        "Quote mode for editorial XML",
		Long:         rootLongDescription,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(rulesFlagName, "r", defaultRulesFile, "rules file (JSON or YAML)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rulesFlagName), rulesConfigKey)

	cmd.PersistentFlags().BoolP(verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file (default "+defaultLogFilename+")")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newWorkflow wires the adapters, the engine and the UI from the configuration.
func newWorkflow(cmd *cobra.Command, settings workflowSettings) (domain.Workflow, error) {
	mode, err := xmltree.ParseIndentMode(viper.GetString(outputIndentKey))
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageConfig, Err: err}
	}

	tree := adapter.NewXMLAdapter(
		viper.GetStringMapString(namespacesKey),
		xmltree.Options{Mode: mode, Indent: viper.GetString(outputIndentStringKey)},
	)

	source := adapter.NewLocalDocumentSource(
		adapter.WithFetchTimeout(viper.GetDuration(fetchTimeoutKey)),
		adapter.WithFetchAttempts(viper.GetUint(fetchAttemptsKey)),
		adapter.WithFetchDelay(viper.GetDuration(fetchDelayKey)),
		adapter.WithMaxDocumentBytes(viper.GetInt64(fetchMaxBytesKey)),
	)

	orchestrator := domain.NewOrchestrator(tree,
		domain.WithContainerXPath(viper.GetString(containerXPathKey)),
		domain.WithFormattingTags(viper.GetStringSlice(formattingTagsKey)...),
	)

	return domain.NewWorkflow(
		adapter.NewLocalRuleSetLoader(),
		source,
		adapter.NewLocalDocumentSink(cmd.OutOrStdout()),
		tree,
		adapter.NewYAMLReportStore(),
		newUI(cmd, settings),
		orchestrator,
	), nil
}

// newUI picks the interactive display only when stdout is a terminal that
// does not also receive documents.
func newUI(cmd *cobra.Command, settings workflowSettings) controller.UI {
	if settings.documentsOnStdout {
		return controller.NewSimpleUI(cmd, controller.UseStderr())
	}

	var opts []controller.TUIOption
	if settings.interrupt != nil {
		opts = append(opts, controller.WithInterrupt(settings.interrupt))
	}

	return controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()), opts...)
}

func rulesPath() (m.Path, error) {
	path := viper.GetString(rulesConfigKey)
	if path == "" {
		return "", &domain.StageError{
			Stage: domain.StageConfig,
			Err:   fmt.Errorf("no rules file: use --%s or set %s", rulesFlagName, rulesConfigKey),
		}
	}

	return m.Path(path), nil
}
