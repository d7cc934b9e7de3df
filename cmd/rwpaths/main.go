package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jward/rwpaths"
	"github.com/spf13/cobra"
)

var (
	flagCwd     string
	flagFormat  string
	flagVerbose bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "rwpaths",
	Short:         "Resolve Redwood project paths and page modules",
	Long:          "rwpaths finds the redwood.toml anchor above a directory, derives the project's api and web paths, and lists the page modules under web/src/pages.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		return validateFormat(flagFormat)
	},
	// No Run; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCwd, "cwd", "", "directory to start the redwood.toml search from (default: working directory)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text|yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log search and walk progress to stderr")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(baseCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the path of the project's redwood.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := findConfig()
		if err != nil {
			return outputError("config", err)
		}
		return outputResult(CLIResult{Command: "config", Results: configPath})
	},
}

var baseCmd = &cobra.Command{
	Use:   "base",
	Short: "Print the project's base directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := findConfig()
		if err != nil {
			return outputError("base", err)
		}
		return outputResult(CLIResult{Command: "base", Results: rwpaths.BaseDir(configPath)})
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths [key]",
	Short: "Print the project's derived paths, or the one named by key",
	Long:  "Without a key, prints every derived path. Keys: base, api.functions, api.graphql, web.routes, web.pages, web.components.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	paths, err := resolveProject()
	if err != nil {
		return outputError("paths", err)
	}
	if len(args) == 0 {
		return outputResult(CLIResult{Command: "paths", Results: paths})
	}
	p, ok := paths.Lookup(args[0])
	if !ok {
		return outputError("paths", fmt.Errorf("unknown path key %q", args[0]))
	}
	return outputResult(CLIResult{Command: "paths", Results: p})
}

// startDir returns the absolute --cwd, or the working directory.
func startDir() (string, error) {
	if flagCwd == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(flagCwd)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", flagCwd, err)
	}
	return abs, nil
}

func findConfig() (string, error) {
	dir, err := startDir()
	if err != nil {
		return "", err
	}
	logger.Debug("searching for config", "file", rwpaths.ConfigFileName, "from", dir)
	configPath, err := rwpaths.FindConfigFrom(dir)
	if err != nil {
		return "", err
	}
	logger.Debug("found config", "path", configPath)
	return configPath, nil
}

func resolveProject() (rwpaths.Paths, error) {
	configPath, err := findConfig()
	if err != nil {
		return rwpaths.Paths{}, err
	}
	return rwpaths.ResolvePaths(rwpaths.BaseDir(configPath)), nil
}
