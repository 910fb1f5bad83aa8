package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skdltmxn/undname-go/undname"
)

var (
	batchJobs      int
	batchKeepGoing bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Demangle a list of symbols",
	Long: `Demangle symbols read one per line from a file, or from standard
input when no file is given. Blank lines are skipped.

Every symbol gets its own demangler instance, so the lines run in
parallel; output order still matches input order.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", runtime.NumCPU(), "number of parallel workers")
	batchCmd.Flags().BoolVarP(&batchKeepGoing, "keep-going", "k", false, "report failed symbols on stderr and continue")
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open symbol list: %w", err)
		}
		defer f.Close()
		in = f
	}

	var symbols []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			symbols = append(symbols, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read symbol list: %w", err)
	}

	results := make([]string, len(symbols))
	errs := make([]error, len(symbols))

	var g errgroup.Group
	g.SetLimit(batchJobs)
	for i, sym := range symbols {
		g.Go(func() error {
			out, err := undname.Demangle(sym)
			if err != nil {
				if batchKeepGoing {
					errs[i] = err
					return nil
				}
				return fmt.Errorf("%s: %w", sym, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	red := color.New(color.FgRed)
	for i, sym := range symbols {
		if errs[i] != nil {
			red.Fprintf(os.Stderr, "%s: %v\n", sym, errs[i])
			continue
		}
		fmt.Println(results[i])
	}
	return nil
}
