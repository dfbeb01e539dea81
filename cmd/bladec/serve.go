package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bladekit/bladec"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve compiled template sources for inspection",
	Long: `Serve starts an HTTP server exposing the template list and the PHP
each template compiles to, recompiling on every request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		compiler := newCompiler(cfg)
		inspector := blade.NewInspector(compiler, cfg.ViewsDir)

		pterm.Info.Printfln("inspecting %s on %s", cfg.ViewsDir, serveAddr)
		return inspector.Router().Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8787", "Listen address")
}
