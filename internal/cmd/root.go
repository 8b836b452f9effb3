package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	format      string
	backendName string
	configPath  string
	metricsFile string
	logLevel    string
)

// RootCmd runs the uniformity check on a file or standard input
var RootCmd = &cobra.Command{
	Use:   "uniformcheck [file]",
	Short: "Chi-square uniformity check for tagged response logs",
	Long: `uniformcheck reads INSTANCE:/RESPONSE: lines and tests whether the
responses are spread uniformly across the declared instances.

Input lines are tab-separated:
  INSTANCE:<TAB><id>[<TAB>anything]   declares an expected category
  RESPONSE:<TAB><id>[<TAB>anything]   records one observed hit
Everything else (including SUM: lines) is ignored.

When no INSTANCE: lines are present, the categories are the sorted set of
response ids. The result is a chi-square goodness-of-fit test against the
uniform distribution with a p-value based rating.

Examples:
  ./loadtest | uniformcheck
  uniformcheck responses.log
  uniformcheck --format json responses.log > report.json
  uniformcheck --backend none < responses.log`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log parse counters and statistics to stderr")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $UNIFORMCHECK_CONFIG)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	RootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml, markdown, html)")
	RootCmd.Flags().StringVar(&backendName, "backend", "gonum", "p-value backend (gonum, none)")
	RootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this path")
}
