package post

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitFrontMatterYAML(t *testing.T) {
	block, format, body, err := SplitFrontMatter([]byte("---\ntitle: Hello\n---\nbody text\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter returned error: %v", err)
	}
	if format != FormatYAML {
		t.Fatalf("expected yaml format, got %q", format)
	}
	if string(block) != "title: Hello\n" {
		t.Fatalf("unexpected block %q", block)
	}
	if string(body) != "body text\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontMatterWithoutBlock(t *testing.T) {
	block, format, body, err := SplitFrontMatter([]byte("just text\n---\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter returned error: %v", err)
	}
	if block != nil || format != FormatNone {
		t.Fatalf("expected no block, got %q (%q)", block, format)
	}
	if string(body) != "just text\n---\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontMatterUnterminated(t *testing.T) {
	_, _, _, err := SplitFrontMatter([]byte("---\ntitle: x\nbody"))
	if !errors.Is(err, ErrUnterminatedFrontMatter) {
		t.Fatalf("expected ErrUnterminatedFrontMatter, got %v", err)
	}
}

func TestSplitFrontMatterStripsBOMAndCRLF(t *testing.T) {
	block, format, body, err := SplitFrontMatter([]byte("\xef\xbb\xbf---\r\ntitle: x\r\n---\r\nbody"))
	if err != nil {
		t.Fatalf("SplitFrontMatter returned error: %v", err)
	}
	if format != FormatYAML || string(block) != "title: x\n" || string(body) != "body" {
		t.Fatalf("unexpected split: block=%q format=%q body=%q", block, format, body)
	}
}

func TestParseFrontMatterYAML(t *testing.T) {
	fm, err := ParseFrontMatter([]byte("id: first\ntitle: Hello\ntags: [go, web]\ncreatedAt: 2024-01-02\nextra: ignored\n"), FormatYAML)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	want := FrontMatter{ID: "first", Title: "Hello", Tags: []string{"go", "web"}, CreatedAt: "2024-01-02"}
	if !reflect.DeepEqual(fm, want) {
		t.Fatalf("unexpected front matter:\n got %+v\nwant %+v", fm, want)
	}
}

func TestParseFrontMatterTOML(t *testing.T) {
	fm, err := ParseFrontMatter([]byte("title = \"Hello\"\ntags = [\"go\"]\nsummary = \"short\"\n"), FormatTOML)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	if fm.Title != "Hello" || fm.Summary != "short" || !reflect.DeepEqual(fm.Tags, []string{"go"}) {
		t.Fatalf("unexpected front matter %+v", fm)
	}
}

func TestParseFrontMatterSingleTag(t *testing.T) {
	fm, err := ParseFrontMatter([]byte("tags: golang\n"), FormatYAML)
	if err != nil {
		t.Fatalf("ParseFrontMatter returned error: %v", err)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"golang"}) {
		t.Fatalf("expected single tag, got %#v", fm.Tags)
	}
}

func TestParseFrontMatterRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"broken yaml":  "title: [unclosed\n",
		"not a map":    "- a\n- b\n",
		"tags mapping": "tags:\n  a: 1\n",
	}
	for name, block := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFrontMatter([]byte(block), FormatYAML); err == nil {
				t.Fatalf("expected error for %q", block)
			}
		})
	}
}
