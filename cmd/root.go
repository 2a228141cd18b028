/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for identify.
package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/identify/cmd/id"
	"bennypowers.dev/identify/cmd/resolve"
	"bennypowers.dev/identify/cmd/version"
	"bennypowers.dev/identify/internal/logger"
	ver "bennypowers.dev/identify/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "identify",
	Short: "Resolve module specifiers and identify module files",
	Long: `identify resolves dependency specifiers to files the way Node.js does
(extension probing, index files, package.json main), and maps files back
to the module ids other files would import them by.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(viper.GetBool("verbose"))
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(ver.Get()),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("root", "", "Project root for config lookup and relative paths (default: working directory)")
	flags.StringP("type", "t", "", "Asset type: js, css, html")
	flags.StringSliceP("ext", "e", nil, "File extensions to try before the asset type's defaults")
	flags.StringSliceP("source", "s", nil, "Source directories to search before the asset type's defaults")
	flags.Bool("case-sensitive", false, "Reject files whose on-disk case differs from the request")
	flags.Bool("all-ancestors", false, "Search every ancestor node_modules directory, not only the nearest")
	flags.BoolP("verbose", "v", false, "Log lookups and cache hits")
	flags.Bool("metrics", false, "Print cache counters to stderr after the command")

	for _, name := range []string{"root", "type", "ext", "source", "case-sensitive", "all-ancestors", "verbose", "metrics"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(id.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
