package main

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-alignprep/internal/corpus"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats CORPUS",
		Short: "Print sentence, token and alignment counts for a corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			pairs, alignments, err := corpus.Load(args[0], cfg.Schema())
			if err != nil {
				return err
			}

			printStats(os.Stdout, pairs, alignments)
			return nil
		},
	}

	return cmd
}

func printStats(w io.Writer, pairs []corpus.SentencePair, alignments []corpus.LabeledAlignment) {
	var sourceTokens, targetTokens, sure, possible int
	for _, pair := range pairs {
		sourceTokens += len(pair.Source)
		targetTokens += len(pair.Target)
	}
	for _, a := range alignments {
		sure += len(a.Sure)
		possible += len(a.Possible)
	}

	fmt.Fprintf(w, "sentences:       %d\n", len(pairs))
	fmt.Fprintf(w, "source tokens:   %d\n", sourceTokens)
	fmt.Fprintf(w, "target tokens:   %d\n", targetTokens)
	fmt.Fprintf(w, "sure links:      %d\n", sure)
	fmt.Fprintf(w, "possible links:  %d\n", possible)
}
