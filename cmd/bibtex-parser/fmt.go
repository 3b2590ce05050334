package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dagrate/bibtex-parser/bibtex"
	"github.com/dagrate/bibtex-parser/processor"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.bib>",
	Short: "Parse a BibTeX file and print it formatted",
	Long:  "Parse a BibTeX file, optionally transform and sort the entries, and print the result to stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().String("sort", "", "Comma-separated tag names to sort by (prefix a name with - for descending)")
	fmtCmd.Flags().Bool("unicode", false, "Convert LaTeX escapes to Unicode")
	fmtCmd.Flags().Bool("lower-tags", false, "Lower-case all tag names")
	fmtCmd.Flags().Bool("names", false, "Normalize author and editor name lists")
	fmtCmd.Flags().Bool("keywords", false, "Normalize the keywords list")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading bibtex file: %w", err)
	}

	entries, err := bibtex.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Parsed %d entries from %s\n", len(entries), args[0])
	}

	var procs []processor.Processor
	if ok, _ := cmd.Flags().GetBool("lower-tags"); ok {
		procs = append(procs, processor.LowercaseTagNames())
	}
	if ok, _ := cmd.Flags().GetBool("names"); ok {
		procs = append(procs, processor.NormalizeNames())
	}
	if ok, _ := cmd.Flags().GetBool("keywords"); ok {
		procs = append(procs, processor.SplitKeywords(""))
	}
	if ok, _ := cmd.Flags().GetBool("unicode"); ok {
		procs = append(procs, processor.LatexToUnicode())
	}
	entries, err = processor.Apply(entries, procs...)
	if err != nil {
		return fmt.Errorf("transforming entries: %w", err)
	}

	if sortSpec, _ := cmd.Flags().GetString("sort"); sortSpec != "" {
		bibtex.SortBy(entries, strings.Split(sortSpec, ",")...)
	}

	return bibtex.Write(os.Stdout, entries)
}
