package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bladekit/bladec"
	"github.com/bladekit/bladec/internal/logging"
)

var (
	verbosity int
	cfgFile   string

	rootCmd = &cobra.Command{
		Use:   "bladec",
		Short: "Precompile Blade templates to PHP",
		Long: `bladec compiles Blade-syntax templates into plain PHP files the
rendering runtime can execute, keeping the compiled copies in a cache
directory keyed by content hash.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "blade.toml", "Path to the compiler config file")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configured blade.toml; a missing file falls
// back to defaults.
func loadConfig() (blade.Config, error) {
	return blade.LoadConfig(cfgFile)
}

func newCompiler(cfg blade.Config) *blade.Compiler {
	return blade.New(
		blade.WithCacheDir(cfg.CacheDir),
		blade.WithExtensions(cfg.Extensions...),
	)
}
