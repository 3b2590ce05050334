// Package processor provides pure transforms applied to parsed BibTeX
// entries after aggregation.
//
// A Processor maps one entry to a replacement entry; Apply runs a chain of
// processors over every entry in registration order. Processors never see
// the scanner or aggregator and compose freely:
//
//	entries, err := processor.Apply(entries,
//	    processor.LowercaseTagNames(),
//	    processor.NormalizeNames(),
//	    processor.LatexToUnicode(),
//	)
package processor
