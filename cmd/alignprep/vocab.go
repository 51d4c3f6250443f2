package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/go-alignprep/internal/corpus"
	"github.com/example/go-alignprep/internal/vocab"
	"github.com/spf13/cobra"
)

func newVocabCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "vocab CORPUS",
		Short: "Build and write the per-language vocabularies only",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			pairs, _, err := corpus.Load(args[0], cfg.Schema())
			if err != nil {
				return err
			}

			source, target := vocab.Build(pairs, cfg.Vocab.FreqCutoff)
			slog.Info("vocabularies built",
				"source_tokens", source.Len(),
				"target_tokens", target.Len(),
				"freq_cutoff", cfg.Vocab.FreqCutoff)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := vocab.WriteFile(source, filepath.Join(outDir, sourceVocabFile)); err != nil {
				return err
			}
			return vocab.WriteFile(target, filepath.Join(outDir, targetVocabFile))
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (defaults to output.dir from config)")

	return cmd
}
