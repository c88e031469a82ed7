package cmd

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/analysis"
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	binsFields []string
	binsN      int
)

var binsCmd = &cobra.Command{
	Use:   "bins [dataset]",
	Short: "Bin fields for histograms and category bar charts",
	Long: `Numeric fields are split into equal-width bins from floor(min) to ceil(max);
categorical fields are counted per value in order of first appearance.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		n := binCount(cmd, "bins", binsN)
		r := report.New(ds)
		names := binsFields
		if len(names) == 0 {
			names, err = selectFields(ds, nil)
			if err != nil {
				return err
			}
		}
		for _, name := range names {
			f, err := ds.Field(name)
			if err != nil {
				return err
			}
			if f.Kind == dataset.KindCategorical {
				r.Distributions = append(r.Distributions, report.DistributionSection{
					Field:  f.Name,
					Counts: analysis.CategoryCounts(ds.Labels(f.Name)),
				})
				continue
			}
			h, err := report.Histogram(ds, f.Name, n)
			if err != nil {
				return err
			}
			r.Histograms = append(r.Histograms, h)
		}
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(binsCmd)
	binsCmd.Flags().StringSliceVar(&binsFields, "field", nil, "fields to bin (repeatable; default from config)")
	binsCmd.Flags().IntVar(&binsN, "bins", 10, "number of equal-width bins (default from config)")
}
