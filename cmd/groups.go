package cmd

import (
	"fmt"

	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var (
	grpBy    string
	grpValue string
	grpBinBy string
	grpBins  int
	grpMeans []string
)

var groupsCmd = &cobra.Command{
	Use:   "groups [dataset]",
	Short: "Summarize a numeric field per group (count, mean, median, quartiles, range)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if grpBy != "" && grpBinBy != "" {
			return fmt.Errorf("use either --by or --bin-by, not both")
		}
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		var means []string
		if len(grpMeans) > 0 {
			if means, err = report.NumericFields(ds, grpMeans); err != nil {
				return err
			}
		}
		g, err := report.Groups(ds, report.GroupOptions{
			By:    grpBy,
			BinBy: grpBinBy,
			Bins:  binCount(cmd, "bins", grpBins),
			Value: grpValue,
			Means: means,
		})
		if err != nil {
			return err
		}
		r := report.New(ds)
		r.Groups = []report.GroupSection{g}
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().StringVar(&grpBy, "by", "", "field to group by (default: one group with every record)")
	groupsCmd.Flags().StringVar(&grpValue, "value", "Sleep Duration", "numeric field summarized per group")
	groupsCmd.Flags().StringVar(&grpBinBy, "bin-by", "", "group by equal-width bins of a numeric field, e.g. Age")
	groupsCmd.Flags().IntVar(&grpBins, "bins", 10, "bins for --bin-by (default from config)")
	groupsCmd.Flags().StringSliceVar(&grpMeans, "means", nil, "numeric fields averaged per group for a grouped bar chart")
}
