// A command line tool to verify captured command output
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = struct {
	cobra.Command
	verbose bool
	log     *zap.Logger
}{
	Command: cobra.Command{
		Use:   "expout",
		Short: "Verify captured command output against expectation files",
		Long: `A command line tool to verify captured command output

Expectation files are YAML:

   label: STDOUT       name of the checked output
   message: ...        printed first on mismatch
   regexp: false       lines are regular expressions
   unordered: false    order of output lines does not matter
   subset: false       output may have more than the expected lines
   except: <regexp>    ignore matching lines on both sides
   lines: [...]        expected lines or patterns

Output lines starting with "DBG:" are dropped unless --keep-noise is set.`,
		SilenceUsage: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootCmd.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		if rootCmd.log, err = newLogger(rootCmd.verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if rootCmd.log != nil {
			_ = rootCmd.log.Sync()
		}
	}
}

var newLogger = func(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func logger() *zap.Logger {
	if rootCmd.log == nil {
		return zap.NewNop()
	}
	return rootCmd.log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
