// Command mlbparser drives the parser library end to end: it reads a
// transcript file, feeds it to a parser.Parser in caller-chosen chunks,
// and prints either the synthesized regex or the finished game.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlbtranscript/parser/config"
)

var configPath string

// rootCmd mirrors the teacher's own top-level cobra.Command: a bare Use/
// Short/Long with subcommands attached in init.
var rootCmd = &cobra.Command{
	Use:   "mlbparser",
	Short: "Incremental baseball transcript parser",
	Long: headerStyle.Render(" mlbparser ") + "\n\n" +
		"Feeds tag-delimited baseball transcripts through the streaming\n" +
		"parser and reports the resulting game, regex, or roster.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default: XDG config path)")
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(regexCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(initConfigCmd())
}

// initConfigCmd writes a default config.yaml at --config (or the XDG
// default path) if one doesn't already exist.
func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config.yaml if one doesn't already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(configPath); err != nil {
				return err
			}
			path := configPath
			if path == "" {
				resolved, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = resolved
			}
			fmt.Println(successStyle.Render("wrote " + path))
			return nil
		},
	}
}

func loadConfigForCmd() (*config.Config, error) {
	return config.Load(configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
