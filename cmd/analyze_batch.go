package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/KaramelBytes/sleepstat-cli/internal/dataset"
	"github.com/KaramelBytes/sleepstat-cli/internal/report"
	"github.com/KaramelBytes/sleepstat-cli/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	abFlags  reportFlags
	abOutDir string
	abJobs   int
	abQuiet  bool
)

// batchResult is one encoded report waiting to be written.
type batchResult struct {
	source string
	body   []byte
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze several CSV/TSV/XLSX files concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		format, err := outputFormat()
		if err != nil {
			return err
		}
		dsOpt, err := datasetOptions()
		if err != nil {
			return err
		}

		jobs := abJobs
		if jobs <= 0 {
			jobs = runtime.GOMAXPROCS(0)
		}
		results := make([]batchResult, len(files))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(jobs)
		for i, path := range files {
			i, path := i, path // per-iteration copies (go 1.21 loop semantics)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ds, err := dataset.Load(path, dsOpt)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				opt, err := abFlags.options(cmd, ds)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				r, err := report.Build(ds, opt)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				b, err := r.Encode(format)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				logger.Debug("report built", "file", path, "rows", ds.Processed, "id", r.ID)
				results[i] = batchResult{source: path, body: b}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if abOutDir == "" {
			for i, res := range results {
				if i > 0 && format == report.FormatMarkdown {
					fmt.Fprintln(out, "\n---")
				}
				if _, err := out.Write(res.body); err != nil {
					return err
				}
			}
			return nil
		}

		if err := utils.EnsureDir(abOutDir); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		taken, err := existingFiles(abOutDir)
		if err != nil {
			return err
		}
		total := len(results)
		for i, res := range results {
			base := filepath.Base(res.source)
			stem := strings.TrimSuffix(base, filepath.Ext(base))
			if flagSheet != "" && strings.EqualFold(filepath.Ext(base), ".xlsx") {
				stem += "__sheet-" + sheetSlug(flagSheet)
			}
			want := filepath.Join(abOutDir, stem+format.Ext())
			dest := utils.UniquePath(want, taken)
			if dest != want && !abQuiet {
				fmt.Fprintf(out, "⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(dest))
			}
			if err := utils.SafeWriteFile(dest, res.body); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] ✓ %s -> %s\n", i+1, total, base, dest)
			}
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist, removes
// duplicates and sorts.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func existingFiles(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read out dir: %w", err)
	}
	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[filepath.Join(dir, e.Name())] = true
	}
	return taken, nil
}

func sheetSlug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "sheet"
	}
	return out
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abFlags.bind(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutDir, "out-dir", "", "directory for one report per input (default: print to stdout)")
	analyzeBatchCmd.Flags().IntVar(&abJobs, "jobs", 0, "files analyzed in parallel (default GOMAXPROCS)")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
