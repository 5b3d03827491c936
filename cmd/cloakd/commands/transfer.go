package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloak-dev/cloak/cmd/cloakd/daemon"
	"github.com/cloak-dev/cloak/internal/cli"
	"github.com/cloak-dev/cloak/internal/logging"
	"github.com/cloak-dev/cloak/internal/store"
)

var (
	exportFile string
	importFile string
)

// exportCmd writes all realm and user data to a JSON file and exits. The
// server runs just long enough to execute the job; admin provisioning is
// skipped and no signal wait happens.
var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export realm and user data to a file",
	PreRunE: preRunSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		Env.SetImportExportMode(true)
		code := daemon.StartWithJob(Env, func(ctx context.Context, st *store.Store) int {
			f, err := os.Create(exportFile)
			if err != nil {
				logging.Error("Failed to open export file %s: %v", exportFile, err)
				return cli.ExitFailure
			}
			defer f.Close()
			if err := st.Export(ctx, f); err != nil {
				logging.Error("Export failed: %v", err)
				return cli.ExitFailure
			}
			logging.Success("Exported realm data to %s", exportFile)
			return cli.ExitOK
		})
		if code != cli.ExitOK {
			return &cli.ExitError{Code: code}
		}
		return nil
	},
}

// importCmd loads realm and user data from a JSON file and exits. Existing
// rows win: records already present in the store are left untouched.
var importCmd = &cobra.Command{
	Use:     "import",
	Short:   "Import realm and user data from a file",
	PreRunE: preRunSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		Env.SetImportExportMode(true)
		code := daemon.StartWithJob(Env, func(ctx context.Context, st *store.Store) int {
			f, err := os.Open(importFile)
			if err != nil {
				logging.Error("Failed to open import file %s: %v", importFile, err)
				return cli.ExitFailure
			}
			defer f.Close()
			if err := st.Import(ctx, f); err != nil {
				logging.Error("Import failed: %v", err)
				return cli.ExitFailure
			}
			logging.Success("Imported realm data from %s", importFile)
			return cli.ExitOK
		})
		if code != cli.ExitOK {
			return &cli.ExitError{Code: code}
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Destination file for exported data")
	_ = exportCmd.MarkFlagRequired("file")

	importCmd.Flags().StringVar(&importFile, "file", "", "Source file of data to import")
	_ = importCmd.MarkFlagRequired("file")
}
