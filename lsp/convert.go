package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/dslkit/parser"
)

// position converts a byte offset of tree.Source to a protocol position,
// whose character counts UTF-16 code units.
func position(tree *parser.Tree, offset int) protocol.Position {
	p := tree.Position(offset)
	lineStart := offset - (p.Column - 1)
	return protocol.Position{
		Line:      protocol.UInteger(p.Line - 1),
		Character: protocol.UInteger(utf16Len(tree.Source[lineStart:offset])),
	}
}

func rangeOf(tree *parser.Tree, span parser.Span) protocol.Range {
	return protocol.Range{
		Start: position(tree, span.Start),
		End:   position(tree, span.End),
	}
}

// offset converts a protocol position back to a byte offset of tree.Source.
func offset(tree *parser.Tree, pos protocol.Position) int {
	return pos.IndexIn(string(tree.Source))
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
