package keyfile

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	ast "github.com/yaobinwen/netplan/pkg/ast/keyfile"
	"github.com/yaobinwen/netplan/pkg/netplanconfig"
	"github.com/yaobinwen/netplan/pkg/nperrors"
)

// ParseError reports a structurally broken keyfile line.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parser reads NetworkManager keyfile profiles. It knows nothing about netplan.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse implements renderer.Parser using the first package of the bundle.
func (p *Parser) Parse(ctx context.Context, bundle *netplanconfig.Bundle, opts netplanconfig.ParseOptions) (*ast.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pkg, ok := bundle.Main()
	if !ok {
		return nil, nperrors.New(nperrors.KindMalformedInput, fmt.Errorf("keyfile bundle is empty"))
	}
	return Parse(pkg.Content, opts)
}

// Parse parses keyfile text.
//
// Blank lines and lines starting with '#' are ignored, leading whitespace is
// ignored, and a repeated section header continues the earlier section.
// "key=" yields an empty value and a header without keys yields an empty section.
func Parse(data []byte, opts netplanconfig.ParseOptions) (*ast.Document, error) {
	doc := &ast.Document{}
	var current *ast.Section

	for i, raw := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		line := strings.TrimLeft(strings.TrimSuffix(raw, "\r"), " \t\v\f")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !utf8.ValidString(line) {
			return nil, malformed(lineNo, "line is not valid UTF-8")
		}

		if strings.HasPrefix(line, "[") {
			name, err := parseHeader(line)
			if err != nil {
				return nil, malformed(lineNo, err.Error())
			}
			current = doc.Section(name)
			if current == nil {
				current = ast.NewSection(name)
				doc.Sections = append(doc.Sections, current)
			}
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, malformed(lineNo, "line is neither a section header nor key=value")
		}
		if current == nil {
			return nil, malformed(lineNo, "key outside of any section")
		}
		key := strings.TrimRight(line[:eq], " \t")
		if key == "" {
			return nil, malformed(lineNo, "empty key")
		}
		value := unescape(strings.TrimLeft(line[eq+1:], " \t"))
		if _, dup := current.Get(key); dup && !opts.AllowDuplicateKeys {
			return nil, malformed(lineNo, fmt.Sprintf("duplicate key %q in section [%s]", key, current.Name))
		}
		current.Set(key, value)
	}

	return doc, nil
}

func parseHeader(line string) (string, error) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "", fmt.Errorf("unterminated section header")
	}
	if rest := strings.TrimSpace(line[end+1:]); rest != "" {
		return "", fmt.Errorf("unexpected text %q after section header", rest)
	}
	name := line[1:end]
	if name == "" {
		return "", fmt.Errorf("empty section name")
	}
	if strings.ContainsRune(name, '[') {
		return "", fmt.Errorf("invalid section name %q", name)
	}
	return name, nil
}

// unescape applies the keyfile string escapes: \s \n \t \r \\.
// Unknown sequences such as the list separator escape "\;" and a trailing
// backslash are kept verbatim.
func unescape(value string) string {
	if !strings.ContainsRune(value, '\\') {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\\' || i+1 >= len(value) {
			b.WriteByte(c)
			continue
		}
		i++
		switch value[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

func malformed(line int, msg string) error {
	return nperrors.New(nperrors.KindMalformedInput, &ParseError{Line: line, Message: msg})
}
