package cmd

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	ctRows  string
	ctCols  string
	ctValue string
	ctBins  int
)

var crosstabCmd = &cobra.Command{
	Use:   "crosstab [dataset]",
	Short: "Count records per pair of categories for a heatmap",
	Long: `Count records for every (row, column) pair of values. Numeric axes are split
into equal-width bins. With --value, each cell also carries the mean of that field.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		ct, err := report.CrossTab(ds, ctRows, ctCols, ctValue, binCount(cmd, "bins", ctBins))
		if err != nil {
			return err
		}
		r := report.New(ds)
		r.CrossTabs = []report.CrossTabSection{ct}
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(crosstabCmd)
	crosstabCmd.Flags().StringVar(&ctRows, "rows", "BMI Category", "row field")
	crosstabCmd.Flags().StringVar(&ctCols, "cols", "Sleep Disorder", "column field")
	crosstabCmd.Flags().StringVar(&ctValue, "value", "", "numeric field averaged per cell")
	crosstabCmd.Flags().IntVar(&ctBins, "bins", 10, "bins for numeric axes (default from config)")
}
