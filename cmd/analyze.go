package cmd

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

// reportFlags are the analysis flags shared by analyze and analyze-batch.
type reportFlags struct {
	fields     []string
	bins       int
	top        int
	pairs      []string
	groupBy    []string
	value      string
	crossTabs  []string
	sampleRows int
}

func (f *reportFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.fields, "fields", nil, "numeric fields for correlations and histograms (default from config)")
	fl.IntVar(&f.bins, "bins", 10, "histogram bins (default from config)")
	fl.IntVar(&f.top, "top", 0, "number of strongest correlation pairs to list (default from config)")
	fl.StringSliceVar(&f.pairs, "pairs", nil, "x:y pairs to regress (default: strongest pairs)")
	fl.StringSliceVar(&f.groupBy, "group-by", nil, "comma-separated column names to group by (repeatable)")
	fl.StringVar(&f.value, "value", "", "numeric field summarized per group (default: first field)")
	fl.StringSliceVar(&f.crossTabs, "crosstab", nil, "rows:cols field pairs for category heatmaps")
	fl.IntVar(&f.sampleRows, "sample-rows", -1, "number of sample rows to include (default from config)")
}

func (f *reportFlags) options(cmd *cobra.Command, ds *dataset.Dataset) (report.Options, error) {
	c := settings()
	opt := report.DefaultOptions()
	fields, err := selectFields(ds, f.fields)
	if err != nil {
		return opt, err
	}
	opt.Fields = fields
	opt.Bins = binCount(cmd, "bins", f.bins)
	opt.TopPairs = c.TopPairs
	if f.top > 0 {
		opt.TopPairs = f.top
	}
	if opt.Pairs, err = parsePairs(f.pairs); err != nil {
		return opt, err
	}
	opt.GroupBy = f.groupBy
	opt.Value = f.value
	if opt.CrossTabs, err = parsePairs(f.crossTabs); err != nil {
		return opt, err
	}
	opt.SampleRows = c.SampleRows
	if f.sampleRows >= 0 {
		opt.SampleRows = f.sampleRows
	}
	return opt, nil
}

var anaFlags reportFlags

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Produce a full statistics report for a survey dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		opt, err := anaFlags.options(cmd, ds)
		if err != nil {
			return err
		}
		r, err := report.Build(ds, opt)
		if err != nil {
			return err
		}
		logger.Debug("report built", "id", r.ID, "fields", len(opt.Fields), "groups", len(r.Groups))
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaFlags.bind(analyzeCmd)
}
