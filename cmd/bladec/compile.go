package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [dir]",
	Short: "Compile every template under a directory",
	Long: `Compile walks the views directory (or the given dir), compiles each
template, and writes the results into the cache directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir := cfg.ViewsDir
		if len(args) > 0 {
			dir = args[0]
		}

		compiler := newCompiler(cfg)
		templates, err := compiler.FindTemplates(dir)
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
		if len(templates) == 0 {
			pterm.Warning.Printfln("no templates found under %s", dir)
			return nil
		}

		progress, _ := pterm.DefaultProgressbar.
			WithTotal(len(templates)).
			WithTitle("Compiling").
			Start()
		for _, t := range templates {
			progress.UpdateTitle(t.Name)
			if _, err := compiler.CompileFile(t.Path); err != nil {
				_, _ = progress.Stop()
				log.Error().Err(err).Str("template", t.Name).Msg("compilation failed")
				return err
			}
			progress.Increment()
		}
		_, _ = progress.Stop()

		pterm.Success.Printfln("compiled %d templates into %s", len(templates), compiler.CacheDir())
		return nil
	},
}
