package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pydexlabs/pydex/internal/config"
	"github.com/pydexlabs/pydex/internal/library"
	"github.com/pydexlabs/pydex/internal/locator"
	"github.com/pydexlabs/pydex/internal/parser"
	"github.com/pydexlabs/pydex/internal/serialize"
	"github.com/pydexlabs/pydex/internal/store"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [package]",
	Short: "Extract a Python package's structural index to JSON documents",
	Long: `Extract locates a Python package by dotted name on the search path,
recursively loads its modules, classes, functions, and subpackages without
executing any code, and writes one JSON document per entity.

The search path is, in order: roots from the config file, entries of the
PYDEXPATH environment variable, and the current directory. Output goes to
the configured output directory (default: content/) with this layout:

  content/library.json      Manifest of loaded top-level packages
  content/pkg/<name>.json   One document per package
  content/mod/<ns>.json     One document per module
  content/cls/<ns>.json     One document per class
  content/def/<ns>.json     One document per function or method

Any missing __init__.py, unreadable file, or syntax error aborts the whole
run; the output directory is only complete if the command succeeds.

Examples:
  pydex extract requests           # Extract the requests package
  pydex extract                    # Extract the configured default package
  pydex extract pkg --roots /src   # Add a search root
  pydex extract pkg --db           # Also write the SQLite index`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractRoots []string
	extractDB    bool
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringSliceVar(&extractRoots, "roots", nil, "Additional search roots (highest priority)")
	extractCmd.Flags().BoolVar(&extractDB, "db", false, "Also index the library into .pydex/index.db")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	packageName := cfg.Extract.Package
	if len(args) > 0 {
		packageName = args[0]
	}

	roots := append([]string{}, extractRoots...)
	roots = append(roots, cfg.Extract.Roots...)
	roots = append(roots, locator.DefaultRoots()...)

	p := parser.New()
	defer p.Close()

	loader := library.NewLoader(locator.New(roots), p, log)
	lib := library.New(loader)

	log.WithField("package", packageName).Info("loading package")
	pkg, err := lib.Load(packageName)
	if err != nil {
		return fmt.Errorf("loading %s: %w", packageName, err)
	}
	log.WithFields(logrus.Fields{
		"package":     pkg.Name,
		"modules":     len(pkg.Modules),
		"subpackages": len(pkg.Subpackages),
	}).Info("finished loading")

	writer := serialize.NewWriter(log)
	if err := writer.Write(lib, cfg.Output.Dir); err != nil {
		return err
	}

	if extractDB {
		if err := writeIndex(lib, log); err != nil {
			return err
		}
	}

	return nil
}

// writeIndex mirrors the library into the SQLite index under .pydex/.
func writeIndex(lib *library.CodeLibrary, log *logrus.Logger) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	pydexDir := filepath.Join(cwd, config.ConfigDirName)
	if err := os.MkdirAll(pydexDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", pydexDir, err)
	}

	st, err := store.Open(pydexDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.IndexLibrary(lib); err != nil {
		return err
	}
	log.Infof("indexed library into %s", st.Path())
	return nil
}
