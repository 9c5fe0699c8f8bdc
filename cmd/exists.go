package cmd

import (
	"fmt"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var existsAll bool

var existsCmd = &cobra.Command{
	Use:   "exists [dataset]",
	Short: "Check whether a dataset's table exists",
	Long: `Checks whether the table behind a dataset exists in the engine. Exits
non-zero when the table is missing. With --all, checks every dataset in the
config and prints a summary instead of setting the exit code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExists,
}

func init() {
	existsCmd.Flags().BoolVar(&existsAll, "all", false, "check every dataset in the config")
	rootCmd.AddCommand(existsCmd)
}

func runExists(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	eng, err := openEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if !existsAll {
		if len(args) != 1 {
			return fmt.Errorf("either name a dataset or pass --all")
		}
		ds, err := buildDataset(cfg, args[0], eng)
		if err != nil {
			return err
		}
		if !ds.Exists(cmd.Context()) {
			return fmt.Errorf("dataset %q does not exist", args[0])
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "dataset %q exists\n", args[0])
		return nil
	}

	names := datasetNames(cfg)
	results := make(map[string]bool, len(names))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(4)
	for _, name := range names {
		g.Go(func() error {
			ds, err := buildDataset(cfg, name, eng)
			if err != nil {
				return err
			}
			ok := ds.Exists(ctx)
			mu.Lock()
			results[name] = ok
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEXISTS")
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%s\t%v\n", name, results[name])
	}
	return w.Flush()
}
