package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteFile writes the vocabulary as one "token<TAB>count" line per token,
// in index order, so that the line number of a token is its index.
func WriteFile(v *Vocabulary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	w := bufio.NewWriter(f)
	for i, tok := range v.tokens {
		fmt.Fprintf(w, "%s\t%d\n", tok, v.counts[i])
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write vocabulary: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return nil
}

// ReadFile loads a vocabulary previously written by WriteFile.
func ReadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	v := &Vocabulary{indices: make(map[string]int32)}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		tok, countStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("read vocabulary %s: malformed line %q", path, line)
		}
		count, err := strconv.ParseInt(countStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read vocabulary %s: malformed count in line %q", path, line)
		}
		v.indices[tok] = int32(len(v.tokens))
		v.tokens = append(v.tokens, tok)
		v.counts = append(v.counts, count)
	}
	return v, nil
}
