package main

import (
	"context"

	"github.com/aretw0/unitconv/internal/cli"
	"github.com/aretw0/unitconv/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive converter",
	Long: `Starts a line-based converter. Each line replaces the input and prints the result.
Commands start with ':' (try :help). With --session the state is persisted in the configured store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		fresh, _ := cmd.Flags().GetBool("fresh")
		jsonMode, _ := cmd.Flags().GetBool("json")
		quiet, _ := cmd.Flags().GetBool("quiet")
		debug, _ := cmd.Flags().GetBool("debug")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		backend, err := cli.OpenBackend(sigCtx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer backend.Close()

		var hooks []domain.LifecycleHooks
		if debug {
			hooks = append(hooks, cli.DebugHooks(logger))
		}

		return cli.Run(sigCtx, cli.NewConverter(backend, logger, hooks...), cli.RunOptions{
			SessionID: sessionID,
			Fresh:     fresh,
			JSON:      jsonMode,
			Quiet:     quiet,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		}, logger)
	},
}

// runFlags is shared by run and the root command, which defaults to run.
var runFlags = newRunFlags()

func newRunFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.StringP("session", "s", "", "Persist the conversion under this session ID")
	fs.Bool("fresh", false, "Discard the stored session before starting")
	fs.Bool("json", false, "Print one JSON state per line (no banner or prompt)")
	fs.BoolP("quiet", "q", false, "Suppress the banner and system messages")
	return fs
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().AddFlagSet(runFlags)

	// 'run' is the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runFlags)
}
