package cmd

import (
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/spf13/cobra"
)

var fieldsSamples int

var fieldsCmd = &cobra.Command{
	Use:   "fields [dataset]",
	Short: "Show the inferred schema of a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args)
		if err != nil {
			return err
		}
		r := report.New(ds)
		r.Fields = report.Schema(ds)
		r.SampleHeader, r.Samples = report.Samples(ds, fieldsSamples)
		return emit(cmd, r)
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	fieldsCmd.Flags().IntVar(&fieldsSamples, "sample-rows", 0, "number of sample rows to include")
}
