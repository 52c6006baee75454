package docs

import (
	"fmt"

	"github.com/spf13/cobra"

	docscheck "iremember/internal/docs"
)

// DocsCmd groups the documentation commands.
var DocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Check the repository documentation",
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Verify README integrity: markdown structure, image references, setup commands",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	DocsCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	report := docscheck.Verify(dir)
	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		status := "ok"
		if !res.Passed {
			status = "FAIL"
		}
		if res.Detail != "" {
			fmt.Fprintf(out, "%-4s %-22s %s\n", status, res.Name, res.Detail)
		} else {
			fmt.Fprintf(out, "%-4s %s\n", status, res.Name)
		}
	}

	if !report.Passed() {
		return fmt.Errorf("documentation checks failed: %d problem(s)", len(report.Failures()))
	}
	fmt.Fprintln(out, "All documentation checks passed")
	return nil
}
