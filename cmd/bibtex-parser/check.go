package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dagrate/bibtex-parser/bibtex"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.bib>...",
	Short: "Parse BibTeX files and report errors with source locations",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	failed := false
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading bibtex file: %w", err)
		}
		entries, err := bibtex.Parse(src)
		if err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %s: %v\n", path, errKind(err), err)
			continue
		}
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "%s: %d entries\n", path, len(entries))
		}
	}
	if failed {
		return errors.New("some files failed to parse")
	}
	return nil
}

// errKind tells malformed syntax apart from unresolvable references.
func errKind(err error) string {
	var scanErr *bibtex.ScanError
	if errors.As(err, &scanErr) {
		return "syntax error"
	}
	var abbrevErr *bibtex.UnknownAbbreviationError
	if errors.As(err, &abbrevErr) {
		return "unknown abbreviation"
	}
	var aggErr *bibtex.AggregationError
	if errors.As(err, &aggErr) {
		return "aggregation error"
	}
	return "error"
}
