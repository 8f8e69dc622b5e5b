package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pydexlabs/pydex/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a .pydex directory with a default config",
	Long: `Initialize writes a .pydex/config.yaml with default settings in the
current directory. Edit it to set the default package, search roots, and
output directory.

Examples:
  pydex init          # Initialize in current directory
  pydex init --force  # Overwrite an existing config`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	path := filepath.Join(cwd, config.ConfigDirName, config.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !initForce {
		relPath, _ := filepath.Rel(cwd, path)
		fmt.Printf("Already initialized at %s\n", relPath)
		return nil
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	relPath, _ := filepath.Rel(cwd, path)
	fmt.Printf("Initialized pydex config at %s\n", relPath)
	return nil
}
