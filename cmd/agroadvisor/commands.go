package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"agroadvisor/pkg/agronomy"
	"agroadvisor/pkg/reference"
)

const maxParallelFiles = 4

type rootFlags struct {
	benchmarks string
	crops      string
	format     string
	compact    bool
	noColor    bool
}

func newRootCmd() *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:           "agroadvisor",
		Short:         "Soil and crop rotation advice for a field snapshot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&rf.benchmarks, "benchmarks", "", "CSV of yield benchmarks (Crop,Avg,Good in t/ha)")
	root.PersistentFlags().StringVar(&rf.crops, "crops", "", "XLSX crop catalog overriding the built-in one")
	root.PersistentFlags().StringVar(&rf.format, "format", "json", "Output format: json or text")
	root.PersistentFlags().BoolVar(&rf.compact, "compact", false, "Print JSON without indentation")
	root.PersistentFlags().BoolVar(&rf.noColor, "no-color", false, "Disable colored text output")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if rf.format != "json" && rf.format != "text" {
			return fmt.Errorf("--format must be json or text, got %q", rf.format)
		}
		return nil
	}

	root.AddCommand(newAdviseCmd(&rf), newClassifyCmd(&rf), newBenchmarkCmd(&rf))
	return root
}

func (rf *rootFlags) engine() (*agronomy.Engine, error) {
	if rf.benchmarks == "" && rf.crops == "" {
		return agronomy.NewEngine(nil), nil
	}
	ref, err := reference.LoadFromFiles(rf.benchmarks, rf.crops)
	if err != nil {
		return nil, err
	}
	return agronomy.NewEngine(ref), nil
}

func (rf *rootFlags) print(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if !rf.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func newAdviseCmd(rf *rootFlags) *cobra.Command {
	var month int
	cmd := &cobra.Command{
		Use:   "advise [field.json ...]",
		Short: "Produce advisory reports for field snapshots",
		Long: `Reads one field snapshot per file (or stdin when no file or "-" is given)
and prints the advisory report. Snapshots may be JSON or YAML with the same
keys; dates are RFC 3339, and YAML also accepts YYYY-MM-DD. Area must be
positive; soil nutrients left out are reported as Unknown. Several files
print a JSON array in argument order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := rf.engine()
			if err != nil {
				return err
			}
			if month == 0 {
				month = int(time.Now().Month())
			}
			if len(args) == 0 {
				args = []string{"-"}
			}
			reports, err := adviseFiles(cmd.Context(), eng, args, month, cmd.InOrStdin())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if rf.format == "text" {
				st := newStyles(colorEnabled(w, rf.noColor))
				for i, rep := range reports {
					if i > 0 {
						fmt.Fprintln(w)
					}
					if err := renderText(w, rep, st); err != nil {
						return err
					}
				}
				return nil
			}
			if len(reports) == 1 {
				return rf.print(w, reports[0])
			}
			return rf.print(w, reports)
		},
	}
	cmd.Flags().IntVar(&month, "month", 0, "Calendar month 1-12 for seasonal filtering (default: current month)")
	return cmd
}

// adviseFiles decodes and analyzes the files concurrently; results keep the
// order of paths. The first failure cancels the rest.
func adviseFiles(ctx context.Context, eng *agronomy.Engine, paths []string, month int, stdin io.Reader) ([]agronomy.AdvisoryReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	stdinUses := 0
	for _, p := range paths {
		if p == "-" {
			stdinUses++
		}
	}
	if stdinUses > 1 {
		return nil, fmt.Errorf("stdin (-) can be given only once")
	}
	out := make([]agronomy.AdvisoryReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := readField(p, stdin)
			if err != nil {
				return err
			}
			out[i] = eng.Advise(f, month)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readField(path string, stdin io.Reader) (agronomy.Field, error) {
	var f agronomy.Field
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return f, err
	}
	if err := decodeField(raw, &f); err != nil {
		return f, fmt.Errorf("%s: decode field: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// decodeField accepts a JSON object or a YAML mapping with the JSON keys.
// YAML is normalized through JSON so both share one set of field tags.
// yaml.v3 hands timestamps to an untyped target as strings, so bare
// YYYY-MM-DD dates are widened to RFC 3339 on the way.
func decodeField(raw []byte, f *agronomy.Field) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return json.Unmarshal(trimmed, f)
	}
	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	if _, ok := doc.(map[string]any); !ok {
		return fmt.Errorf("expected a mapping at the top level")
	}
	js, err := json.Marshal(widenDates(doc))
	if err != nil {
		return err
	}
	return json.Unmarshal(js, f)
}

func widenDates(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			if s, ok := x.(string); ok && strings.HasSuffix(k, "Date") {
				if d, err := time.Parse(time.DateOnly, s); err == nil {
					t[k] = d.Format(time.RFC3339)
				}
				continue
			}
			t[k] = widenDates(x)
		}
	case []any:
		for i := range t {
			t[i] = widenDates(t[i])
		}
	}
	return v
}

func newClassifyCmd(rf *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <nutrient> <value>",
		Short: "Label a single soil reading (N, P, K, pH, OM)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := agronomy.ParseNutrient(args[0])
			if !ok {
				return fmt.Errorf("unknown nutrient %q", args[0])
			}
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("value: %w", err)
			}
			eng, err := rf.engine()
			if err != nil {
				return err
			}
			st := eng.Classify(n, v)
			if rf.format == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %g: %s (optimal %s)\n", st.Nutrient, v, st.Label, st.OptimalRange)
				return err
			}
			return rf.print(cmd.OutOrStdout(), st)
		},
	}
}

func newBenchmarkCmd(rf *rootFlags) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "benchmark <crop> <yield>",
		Short: "Compare a yield against the regional benchmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("yield: %w", err)
			}
			eng, err := rf.engine()
			if err != nil {
				return err
			}
			res := eng.CompareYield(args[0], y, unit)
			if res == nil {
				return fmt.Errorf("no benchmark for %s at %v %s", args[0], y, unit)
			}
			if rf.format == "text" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %g %s: %d%% of average %g (%s)\n",
					args[0], y, unit, res.Percentage, res.Avg, res.Status)
				return err
			}
			return rf.print(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&unit, "unit", agronomy.BenchmarkUnit, "Yield unit")
	return cmd
}
