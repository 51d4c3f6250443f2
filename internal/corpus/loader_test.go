package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCorpus writes body to a temp file and returns its path.
func writeCorpus(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.wa")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write corpus fixture: %v", err)
	}

	return path
}

const basicCorpus = `<book>
<s>
<english>a b a</english>
<czech>x y</czech>
<sure>1-1 2-2</sure>
<possible>1-1 2-2 3-2</possible>
</s>
<s>
<english>c</english>
<czech>z</czech>
<sure></sure>
<possible></possible>
</s>
</book>`

// ---------------------------------------------------------------------------
// Load — happy path
// ---------------------------------------------------------------------------

func TestLoad_ParallelSlicesInDocumentOrder(t *testing.T) {
	path := writeCorpus(t, basicCorpus)

	pairs, alignments, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(pairs) != 2 || len(alignments) != 2 {
		t.Fatalf("Load returned %d pairs, %d alignments; want 2, 2", len(pairs), len(alignments))
	}

	if got := strings.Join(pairs[0].Source, " "); got != "a b a" {
		t.Errorf("pairs[0].Source joined = %q, want %q", got, "a b a")
	}

	if got := strings.Join(pairs[1].Target, " "); got != "z" {
		t.Errorf("pairs[1].Target joined = %q, want %q", got, "z")
	}
}

func TestLoad_AlignmentLinks(t *testing.T) {
	path := writeCorpus(t, basicCorpus)

	_, alignments, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	wantSure := []Link{{1, 1}, {2, 2}}
	if len(alignments[0].Sure) != len(wantSure) {
		t.Fatalf("sure links = %v, want %v", alignments[0].Sure, wantSure)
	}
	for i, link := range wantSure {
		if alignments[0].Sure[i] != link {
			t.Errorf("sure[%d] = %v, want %v", i, alignments[0].Sure[i], link)
		}
	}

	if len(alignments[0].Possible) != 3 {
		t.Errorf("possible links = %v, want 3 entries", alignments[0].Possible)
	}

	if alignments[0].Possible[2] != (Link{3, 2}) {
		t.Errorf("possible[2] = %v, want {3 2}", alignments[0].Possible[2])
	}
}

func TestLoad_EmptyAlignmentFieldsYieldEmptyLists(t *testing.T) {
	path := writeCorpus(t, basicCorpus)

	_, alignments, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(alignments[1].Sure) != 0 {
		t.Errorf("empty <sure> produced %v, want empty list", alignments[1].Sure)
	}

	if len(alignments[1].Possible) != 0 {
		t.Errorf("empty <possible> produced %v, want empty list", alignments[1].Possible)
	}
}

func TestLoad_AbsentAlignmentElementsYieldEmptyLists(t *testing.T) {
	path := writeCorpus(t, `<book><s><english>a</english><czech>x</czech></s></book>`)

	_, alignments, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(alignments[0].Sure) != 0 || len(alignments[0].Possible) != 0 {
		t.Errorf("absent alignment elements produced %+v, want empty lists", alignments[0])
	}
}

func TestLoad_EmptySentenceTextYieldsEmptyTokens(t *testing.T) {
	path := writeCorpus(t, `<book><s><english></english><czech>x</czech></s></book>`)

	pairs, _, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(pairs[0].Source) != 0 {
		t.Errorf("empty <english> produced tokens %v, want none", pairs[0].Source)
	}
}

func TestLoad_WhitespaceRoundTrip(t *testing.T) {
	// Re-splitting the joined tokens must reproduce the stored token lists:
	// tokenization is whitespace splitting, not re-normalization.
	path := writeCorpus(t, "<book><s><english>  a\tb \n c </english><czech>x</czech></s></book>")

	pairs, _, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	joined := strings.Join(pairs[0].Source, " ")
	resplit := strings.Fields(joined)
	if len(resplit) != len(pairs[0].Source) {
		t.Fatalf("round trip changed token count: %v vs %v", resplit, pairs[0].Source)
	}
	for i := range resplit {
		if resplit[i] != pairs[0].Source[i] {
			t.Errorf("round trip token %d = %q, want %q", i, resplit[i], pairs[0].Source[i])
		}
	}
}

func TestLoad_CustomSchema(t *testing.T) {
	body := `<corpus><pair><de>der Hund</de><en>the dog</en><gold>1-1 2-2</gold><loose>1-1</loose></pair></corpus>`
	path := writeCorpus(t, body)

	schema := Schema{Sentence: "pair", Source: "de", Target: "en", Sure: "gold", Possible: "loose"}
	pairs, alignments, err := Load(path, schema)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(pairs) != 1 || len(pairs[0].Source) != 2 || pairs[0].Target[1] != "dog" {
		t.Errorf("custom schema load = %+v, want der/Hund vs the/dog", pairs)
	}

	if len(alignments[0].Sure) != 2 || len(alignments[0].Possible) != 1 {
		t.Errorf("custom schema alignments = %+v", alignments[0])
	}
}

// ---------------------------------------------------------------------------
// Load — ampersand repair
// ---------------------------------------------------------------------------

func TestLoad_BareAmpersandIsRepaired(t *testing.T) {
	body := `<book><s><english>bread & butter</english><czech>x</czech><sure></sure><possible></possible></s></book>`
	path := writeCorpus(t, body)

	pairs, _, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load with bare ampersand: %v", err)
	}

	if got := strings.Join(pairs[0].Source, " "); got != "bread & butter" {
		t.Errorf("source after repair = %q, want literal ampersand preserved", got)
	}
}

func TestLoad_UndefinedEntityIsRepaired(t *testing.T) {
	// &nbsp; is HTML, not XML: strict parsing would reject it, so the loader
	// must repair it like any other bare ampersand and keep the text literal.
	body := `<book><s><english>bread&nbsp;butter x</english><czech>x</czech></s></book>`
	path := writeCorpus(t, body)

	pairs, _, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load with undefined entity: %v", err)
	}

	if got := strings.Join(pairs[0].Source, " "); got != "bread&nbsp;butter x" {
		t.Errorf("source = %q, want literal %q preserved", got, "bread&nbsp;butter x")
	}
}

func TestLoad_ValidEntitiesNeedNoRepair(t *testing.T) {
	body := `<book><s><english>bread &amp; butter</english><czech>x</czech></s></book>`
	path := writeCorpus(t, body)

	pairs, _, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load with escaped ampersand: %v", err)
	}

	if got := strings.Join(pairs[0].Source, " "); got != "bread & butter" {
		t.Errorf("source = %q, want decoded ampersand", got)
	}
}

func TestHasBareAmpersand(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"no ampersand here", false},
		{"bread & butter", true},
		{"bread &amp; butter", false},
		{"bread &#38; butter", false},
		{"bread &#x26; butter", false},
		{"trailing &", true},
		{"broken &amp butter", true},
		{"html-only &nbsp; entity", true},
		{"undefined &foo; entity", true},
		{"&lt; &gt; &apos; &quot;", false},
		{"numeric-empty &#; ref", true},
		{"hex-empty &#x; ref", true},
		{"mixed &amp; and & bare", true},
	}
	for _, c := range cases {
		if got := hasBareAmpersand([]byte(c.input)); got != c.want {
			t.Errorf("hasBareAmpersand(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Load — failure modes
// ---------------------------------------------------------------------------

func TestLoad_MissingSourceField(t *testing.T) {
	path := writeCorpus(t, `<book><s><czech>x</czech></s></book>`)

	_, _, err := Load(path, DefaultSchema())

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Load error = %v, want MissingFieldError", err)
	}

	if missing.Field != "english" || missing.Sentence != 0 {
		t.Errorf("MissingFieldError = %+v, want field english, sentence 0", missing)
	}
}

func TestLoad_MissingTargetField(t *testing.T) {
	path := writeCorpus(t, `<book><s><english>a</english></s></book>`)

	_, _, err := Load(path, DefaultSchema())

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Load error = %v, want MissingFieldError", err)
	}

	if missing.Field != "czech" {
		t.Errorf("MissingFieldError field = %q, want czech", missing.Field)
	}
}

func TestLoad_MalformedAlignmentToken(t *testing.T) {
	cases := []string{"12", "a-1", "1-b", "1_2", "-"}
	for _, tok := range cases {
		body := `<book><s><english>a</english><czech>x</czech><sure>` + tok + `</sure></s></book>`
		path := writeCorpus(t, body)

		_, _, err := Load(path, DefaultSchema())

		var format *FormatError
		if !errors.As(err, &format) {
			t.Errorf("Load with sure=%q: error = %v, want FormatError", tok, err)
			continue
		}

		if format.Token != tok || format.Field != "sure" {
			t.Errorf("FormatError = %+v, want token %q in field sure", format, tok)
		}
	}
}

func TestLoad_FieldErrorsAreNotParseErrors(t *testing.T) {
	// The taxonomy keeps malformed-content errors distinct from malformed-XML
	// errors; a missing field must not come back wrapped as a ParseError.
	path := writeCorpus(t, `<book><s><czech>x</czech></s></book>`)

	_, _, err := Load(path, DefaultSchema())

	var parse *ParseError
	if errors.As(err, &parse) {
		t.Errorf("Load error = %v, should not be a ParseError", err)
	}

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Errorf("Load error = %v, want MissingFieldError", err)
	}
}

func TestLoad_MalformedXML(t *testing.T) {
	path := writeCorpus(t, `<book><s><english>a</english>`)

	_, _, err := Load(path, DefaultSchema())

	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Fatalf("Load error = %v, want ParseError", err)
	}

	if parse.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parse.Path, path)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.wa"), DefaultSchema())
	if err == nil {
		t.Fatal("Load of missing file should return error")
	}
}

func TestLoad_EmptyCorpus(t *testing.T) {
	path := writeCorpus(t, `<book></book>`)

	pairs, alignments, err := Load(path, DefaultSchema())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if len(pairs) != 0 || len(alignments) != 0 {
		t.Errorf("empty corpus produced %d pairs, %d alignments", len(pairs), len(alignments))
	}
}
