package cmd

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	regX string
	regY string
)

var regressCmd = &cobra.Command{
	Use:   "regress [dataset]",
	Short: "Fit a least-squares trend line of one field on another",
	Long: `Fit y on x over the records where both are present and report the
sample size, Pearson r, slope, intercept, R² and the scatter points with
the trend line evaluated at the smallest and largest x.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		sc, err := report.Scatter(ds, regX, regY)
		if err != nil {
			return err
		}
		if !sc.Defined {
			logger.Warn("coefficients fell back to defaults", "x", sc.X, "y", sc.Y, "n", sc.N)
		}
		r := report.New(ds)
		r.Scatter = sc
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().StringVar(&regX, "x", "Sleep Duration", "predictor field")
	regressCmd.Flags().StringVar(&regY, "y", "Quality of Sleep", "response field")
}
