package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datalift/tablegate/dataframe"
)

var loadOut string

var loadCmd = &cobra.Command{
	Use:   "load <dataset>",
	Short: "Load a dataset and write it to a local file",
	Long:  `Loads the dataset's table from the engine and writes it to --out. The file format follows the extension: .csv or .parquet.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadOut, "out", "", "output file (.csv or .parquet)")
	_ = loadCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	ds, err := buildDataset(cfg, args[0], eng)
	if err != nil {
		return err
	}
	data, err := ds.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load %q: %w", args[0], err)
	}

	var local *dataframe.Local
	switch v := data.(type) {
	case *dataframe.Local:
		local = v
	case *dataframe.Frame:
		defer v.Release()
		local = v.ToLocal()
	default:
		return fmt.Errorf("unexpected dataframe type %T", data)
	}

	switch strings.ToLower(filepath.Ext(loadOut)) {
	case ".csv":
		err = dataframe.WriteCSV(loadOut, local)
	case ".parquet":
		err = dataframe.WriteParquet(loadOut, local)
	default:
		return fmt.Errorf("unsupported output extension %q (expected .csv or .parquet)", filepath.Ext(loadOut))
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", local.NumRows(), loadOut)
	return nil
}
