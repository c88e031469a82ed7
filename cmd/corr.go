package cmd

import (
	"fmt"

	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	corrFields []string
	corrTop    int
)

var corrCmd = &cobra.Command{
	Use:   "corr [dataset]",
	Short: "Compute the Pearson correlation matrix of numeric fields",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		fields, err := selectFields(ds, corrFields)
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			return fmt.Errorf("need at least two numeric fields, have %d", len(fields))
		}
		top := settings().TopPairs
		if corrTop > 0 {
			top = corrTop
		}
		r := report.New(ds)
		r.Correlation = report.Correlations(ds, fields, top)
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(corrCmd)
	corrCmd.Flags().StringSliceVar(&corrFields, "fields", nil, "numeric fields to correlate (default from config)")
	corrCmd.Flags().IntVar(&corrTop, "top", 0, "number of strongest pairs to list (default from config)")
}
