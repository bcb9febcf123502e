package post

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	FormatNone = ""
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ErrUnterminatedFrontMatter is returned when an opening delimiter has no
// matching closing line.
var ErrUnterminatedFrontMatter = errors.New("front matter is not terminated")

// FrontMatter holds the recognised metadata keys. Unknown keys are dropped.
type FrontMatter struct {
	ID         string
	Title      string
	Summary    string
	Image      string
	Tags       []string
	CreatedAt  string
	ModifiedAt string
}

var delimiters = map[string]string{
	"---": FormatYAML,
	"+++": FormatTOML,
}

// SplitFrontMatter separates a leading metadata block from the body. Sources
// without a block return a nil block and the whole input as body.
func SplitFrontMatter(source []byte) ([]byte, string, []byte, error) {
	data := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	firstLine, rest, _ := bytes.Cut(data, []byte("\n"))
	delim := string(bytes.TrimRight(firstLine, " \t"))
	format, ok := delimiters[delim]
	if !ok {
		return nil, FormatNone, data, nil
	}

	offset := 0
	for offset <= len(rest) {
		line, tail, found := bytes.Cut(rest[offset:], []byte("\n"))
		if string(bytes.TrimRight(line, " \t")) == delim {
			block := rest[:offset]
			if !found {
				return block, format, nil, nil
			}
			return block, format, tail, nil
		}
		if !found {
			break
		}
		offset += len(line) + 1
	}

	return nil, format, nil, fmt.Errorf("%s block: %w", format, ErrUnterminatedFrontMatter)
}

// ParseFrontMatter decodes a metadata block produced by SplitFrontMatter.
func ParseFrontMatter(block []byte, format string) (FrontMatter, error) {
	if len(bytes.TrimSpace(block)) == 0 {
		return FrontMatter{}, nil
	}

	raw := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(block, &raw); err != nil {
			return FrontMatter{}, fmt.Errorf("decode yaml front matter: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(block, &raw); err != nil {
			return FrontMatter{}, fmt.Errorf("decode toml front matter: %w", err)
		}
	default:
		return FrontMatter{}, fmt.Errorf("unsupported front matter format %q", format)
	}

	tags, err := tagsField(raw["tags"])
	if err != nil {
		return FrontMatter{}, err
	}

	return FrontMatter{
		ID:         stringField(raw["id"]),
		Title:      stringField(raw["title"]),
		Summary:    stringField(raw["summary"]),
		Image:      stringField(raw["image"]),
		Tags:       tags,
		CreatedAt:  stringField(raw["createdAt"]),
		ModifiedAt: stringField(raw["modifiedAt"]),
	}, nil
}

func stringField(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return strings.TrimSpace(fmt.Sprint(value))
	}
	return strings.TrimSpace(s)
}

func tagsField(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}, nil
		}
		return []string{}, nil
	}

	tags, err := cast.ToStringSliceE(value)
	if err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
