package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/undname-go/undname"
)

var rootCmd = &cobra.Command{
	Use:   "undname <symbol>",
	Short: "Demangle MSVC decorated names",
	Long: `undname decodes symbols mangled by the Microsoft Visual C++
compiler back into readable C++ declarations.

A symbol that does not begin with '?' is treated as already demangled
and echoed unchanged.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemangle,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runDemangle(cmd *cobra.Command, args []string) error {
	s, err := undname.Demangle(args[0])
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}
