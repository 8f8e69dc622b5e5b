package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pydexlabs/pydex/internal/config"
	"github.com/pydexlabs/pydex/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extracted index over MCP (stdio)",
	Long: `Serve starts an MCP (Model Context Protocol) server over the SQLite
index, so AI agents can query the extracted namespaces through tools
instead of reading the JSON document tree.

The index must exist first: run 'pydex extract --db'.

Available tools:
  pydex_lookup    Look up an entity by fully-qualified namespace
  pydex_search    Search entities by name substring
  pydex_packages  List indexed top-level packages

Examples:
  pydex extract requests --db   # Build the index
  pydex serve                   # Serve it on stdin/stdout`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	pydexDir := filepath.Join(cwd, config.ConfigDirName)
	if _, err := os.Stat(pydexDir); err != nil {
		return fmt.Errorf("no %s directory found: run 'pydex extract --db' first", config.ConfigDirName)
	}

	server, err := mcp.New(pydexDir)
	if err != nil {
		return err
	}
	defer server.Close()

	return server.ServeStdio()
}
