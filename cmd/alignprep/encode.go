package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/go-alignprep/internal/corpus"
	"github.com/example/go-alignprep/internal/encode"
	"github.com/example/go-alignprep/internal/vocab"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var vocabDir string
	var outDir string

	cmd := &cobra.Command{
		Use:   "encode CORPUS",
		Short: "Encode a corpus using vocabularies from an earlier run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if vocabDir == "" {
				vocabDir = cfg.Output.Dir
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			source, err := vocab.ReadFile(filepath.Join(vocabDir, sourceVocabFile))
			if err != nil {
				return err
			}
			target, err := vocab.ReadFile(filepath.Join(vocabDir, targetVocabFile))
			if err != nil {
				return err
			}
			slog.Info("vocabularies loaded", "dir", vocabDir,
				"source_tokens", source.Len(), "target_tokens", target.Len())

			pairs, _, err := corpus.Load(args[0], cfg.Schema())
			if err != nil {
				return err
			}

			encoded := encode.Encode(pairs, source, target)
			slog.Info("sentences encoded", "kept", len(encoded), "dropped", len(pairs)-len(encoded))

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			return writeSentences(filepath.Join(outDir, sentencesFile), encoded)
		},
	}

	cmd.Flags().StringVar(&vocabDir, "vocab-dir", "", "Directory holding source.vocab and target.vocab (defaults to output.dir from config)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (defaults to output.dir from config)")

	return cmd
}
