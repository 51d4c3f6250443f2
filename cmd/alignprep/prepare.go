package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/go-alignprep/internal/corpus"
	"github.com/example/go-alignprep/internal/encode"
	"github.com/example/go-alignprep/internal/vocab"
	"github.com/spf13/cobra"
)

const (
	sourceVocabFile = "source.vocab"
	targetVocabFile = "target.vocab"
	sentencesFile   = "sentences.jsonl"
)

func newPrepareCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "prepare CORPUS",
		Short: "Run the full pipeline: load corpus, build vocabularies, encode sentences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}

			pairs, alignments, err := corpus.Load(args[0], cfg.Schema())
			if err != nil {
				return err
			}
			slog.Info("corpus loaded", "path", args[0], "sentences", len(pairs), "alignments", len(alignments))

			source, target := vocab.Build(pairs, cfg.Vocab.FreqCutoff)
			slog.Info("vocabularies built",
				"source_tokens", source.Len(),
				"target_tokens", target.Len(),
				"freq_cutoff", cfg.Vocab.FreqCutoff)

			encoded := encode.Encode(pairs, source, target)
			slog.Info("sentences encoded", "kept", len(encoded), "dropped", len(pairs)-len(encoded))

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := vocab.WriteFile(source, filepath.Join(outDir, sourceVocabFile)); err != nil {
				return err
			}
			if err := vocab.WriteFile(target, filepath.Join(outDir, targetVocabFile)); err != nil {
				return err
			}
			if err := writeSentences(filepath.Join(outDir, sentencesFile), encoded); err != nil {
				return err
			}

			slog.Info("outputs written", "dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (defaults to output.dir from config)")

	return cmd
}

// writeSentences writes one JSON object per encoded sentence pair, in corpus
// order.
func writeSentences(path string, encoded []encode.TokenizedSentencePair) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write sentences: %w", err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, pair := range encoded {
		if err := enc.Encode(pair); err != nil {
			f.Close()
			return fmt.Errorf("write sentences: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write sentences: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write sentences: %w", err)
	}
	return nil
}
