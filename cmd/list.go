package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/datalift/tablegate"
	"github.com/datalift/tablegate/dataset"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered dataset kinds and configured datasets",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "KINDS")
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION")
	for _, e := range dataset.Entries() {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Description)
	}

	cfg, err := loadConfig()
	if err == nil && len(cfg.Datasets) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "DATASETS")
		_, _ = fmt.Fprintln(w, "NAME\tTYPE\tTABLE")
		for _, name := range datasetNames(cfg) {
			raw := cfg.Datasets[name]
			kind, _ := raw["type"].(string)
			if kind == "" {
				kind = tablegate.DefaultKind
			}
			tbl, _ := raw["table"].(string)
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, kind, tbl)
		}
	}

	return w.Flush()
}
