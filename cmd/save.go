package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/datalift/tablegate/dataframe"
	"github.com/datalift/tablegate/dataset/tabledataset"
	"github.com/datalift/tablegate/table"
)

var saveFrom string

var saveCmd = &cobra.Command{
	Use:   "save <dataset>",
	Short: "Save a local file into a dataset",
	Long:  `Reads --from (.csv or .parquet) and saves it through the dataset's configured write mode. The dataset's schema, when set, truncates the data to its fields.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveFrom, "from", "", "input file (.csv or .parquet)")
	_ = saveCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
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

	var local *dataframe.Local
	switch strings.ToLower(filepath.Ext(saveFrom)) {
	case ".csv":
		local, err = dataframe.ReadCSV(saveFrom)
	case ".parquet":
		local, err = dataframe.ReadParquet(cmd.Context(), saveFrom)
	default:
		return fmt.Errorf("unsupported input extension %q (expected .csv or .parquet)", filepath.Ext(saveFrom))
	}
	if err != nil {
		return err
	}

	var data any = local
	if gw, ok := ds.(*tabledataset.Gateway); ok && gw.Descriptor().FrameType() == table.FrameNative {
		frame, err := dataframe.FromLocalInferred(local)
		if err != nil {
			return err
		}
		defer frame.Release()
		data = frame
	}

	if err := ds.Save(cmd.Context(), data); err != nil {
		return fmt.Errorf("save %q: %w", args[0], err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %d rows to dataset %q\n", local.NumRows(), args[0])
	return nil
}
