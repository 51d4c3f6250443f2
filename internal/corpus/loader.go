package corpus

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Schema names the XML elements of one corpus variant. The element layout is
// always one root containing repeated sentence elements with four text
// children; only the names differ between corpora.
type Schema struct {
	Sentence string
	Source   string
	Target   string
	Sure     string
	Possible string
}

// DefaultSchema matches the Czech-English manual alignment corpus.
func DefaultSchema() Schema {
	return Schema{
		Sentence: "s",
		Source:   "english",
		Target:   "czech",
		Sure:     "sure",
		Possible: "possible",
	}
}

// Load reads a corpus file and returns one SentencePair and one
// LabeledAlignment per sentence element, both in document order. The two
// slices always have equal length.
//
// The known corpus source contains literal ampersands that are not escaped
// as XML entities. When such a bare ampersand is found, every ampersand in
// the document is rewritten to &#38; and the repaired text is parsed from
// memory; otherwise the file bytes are parsed as-is.
func Load(path string, schema Schema) ([]SentencePair, []LabeledAlignment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: read %s: %w", path, err)
	}

	if hasBareAmpersand(data) {
		data = bytes.ReplaceAll(data, []byte("&"), []byte("&#38;"))
	}

	pairs, alignments, err := parse(bytes.NewReader(data), schema)
	if err != nil {
		var missing *MissingFieldError
		var format *FormatError
		if errors.As(err, &missing) || errors.As(err, &format) {
			return nil, nil, err
		}
		return nil, nil, &ParseError{Path: path, Err: err}
	}
	return pairs, alignments, nil
}

// hasBareAmpersand reports whether data contains an ampersand that does not
// begin an entity reference the strict parser accepts: one of the five
// predefined XML entities, &#digits; or &#xhex;. Anything else (including
// HTML-only names like &nbsp;) would fail strict parsing, so it counts as
// bare and triggers the repair, matching how the known corpus source is
// loaded.
func hasBareAmpersand(data []byte) bool {
	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			continue
		}
		if !startsEntity(data[i+1:]) {
			return true
		}
	}
	return false
}

var predefinedEntities = []string{"lt;", "gt;", "amp;", "apos;", "quot;"}

func startsEntity(rest []byte) bool {
	if len(rest) == 0 {
		return false
	}
	if rest[0] != '#' {
		for _, name := range predefinedEntities {
			if len(rest) >= len(name) && string(rest[:len(name)]) == name {
				return true
			}
		}
		return false
	}

	i := 1
	if i < len(rest) && (rest[i] == 'x' || rest[i] == 'X') {
		i++
		for i < len(rest) && isHexDigit(rest[i]) {
			i++
		}
		if i == 2 {
			return false
		}
	} else {
		start := i
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i < len(rest) && rest[i] == ';'
}

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func parse(r io.Reader, schema Schema) ([]SentencePair, []LabeledAlignment, error) {
	dec := xml.NewDecoder(r)

	var pairs []SentencePair
	var alignments []LabeledAlignment

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != schema.Sentence {
			continue
		}

		pair, alignment, err := parseSentence(dec, start, schema, len(pairs))
		if err != nil {
			return nil, nil, err
		}
		pairs = append(pairs, pair)
		alignments = append(alignments, alignment)
	}

	return pairs, alignments, nil
}

// parseSentence consumes one sentence element. index is the 0-based position
// of the element in document order, used only for error reporting.
func parseSentence(dec *xml.Decoder, start xml.StartElement, schema Schema, index int) (SentencePair, LabeledAlignment, error) {
	fields := make(map[string]string, 4)

	for {
		tok, err := dec.Token()
		if err != nil {
			return SentencePair{}, LabeledAlignment{}, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return SentencePair{}, LabeledAlignment{}, err
			}
			if _, seen := fields[t.Name.Local]; !seen {
				fields[t.Name.Local] = text
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return assembleSentence(fields, schema, index)
			}
		}
	}
}

func assembleSentence(fields map[string]string, schema Schema, index int) (SentencePair, LabeledAlignment, error) {
	source, ok := fields[schema.Source]
	if !ok {
		return SentencePair{}, LabeledAlignment{}, &MissingFieldError{Field: schema.Source, Sentence: index}
	}
	target, ok := fields[schema.Target]
	if !ok {
		return SentencePair{}, LabeledAlignment{}, &MissingFieldError{Field: schema.Target, Sentence: index}
	}

	sure, err := parseLinks(fields[schema.Sure], schema.Sure, index)
	if err != nil {
		return SentencePair{}, LabeledAlignment{}, err
	}
	possible, err := parseLinks(fields[schema.Possible], schema.Possible, index)
	if err != nil {
		return SentencePair{}, LabeledAlignment{}, err
	}

	pair := SentencePair{
		Source: strings.Fields(source),
		Target: strings.Fields(target),
	}
	return pair, LabeledAlignment{Sure: sure, Possible: possible}, nil
}

// parseLinks splits a whitespace-separated list of "i-j" tokens into Links.
// An empty or absent field yields an empty list.
func parseLinks(text, field string, index int) ([]Link, error) {
	raw := strings.Fields(text)
	links := make([]Link, 0, len(raw))
	for _, tok := range raw {
		left, right, ok := strings.Cut(tok, "-")
		if !ok {
			return nil, &FormatError{Field: field, Sentence: index, Token: tok}
		}
		src, err := strconv.Atoi(left)
		if err != nil {
			return nil, &FormatError{Field: field, Sentence: index, Token: tok}
		}
		tgt, err := strconv.Atoi(right)
		if err != nil {
			return nil, &FormatError{Field: field, Sentence: index, Token: tok}
		}
		links = append(links, Link{Source: src, Target: tgt})
	}
	return links, nil
}
