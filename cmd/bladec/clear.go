package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all compiled templates from the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		compiler := newCompiler(cfg)
		if err := compiler.ClearCache(); err != nil {
			return err
		}
		pterm.Success.Printfln("cleared compiled templates from %s", compiler.CacheDir())
		return nil
	},
}
