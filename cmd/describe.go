package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <dataset>",
	Short: "Describe a configured dataset",
	Long:  `Prints the dataset's resolved identity: catalog, database, table, write mode, dataframe type, and any extra options carried in the config.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
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

	out, err := json.MarshalIndent(ds.Describe(), "", "  ")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
