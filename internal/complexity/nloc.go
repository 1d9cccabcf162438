package complexity

import (
	"bytes"

	"github.com/huangsam/outlier/schema"
)

// commentSyntax describes the comment delimiters of a language family.
type commentSyntax struct {
	line       []string
	blockStart string
	blockEnd   string
}

var (
	cStyle       = commentSyntax{line: []string{"//"}, blockStart: "/*", blockEnd: "*/"}
	hashStyle    = commentSyntax{line: []string{"#"}}
	phpStyle     = commentSyntax{line: []string{"//", "#"}, blockStart: "/*", blockEnd: "*/"}
	luaStyle     = commentSyntax{line: []string{"--"}, blockStart: "--[[", blockEnd: "]]"}
	fortranStyle = commentSyntax{line: []string{"!"}}
)

func syntaxFor(lang schema.Language) commentSyntax {
	switch lang {
	case schema.LangPython, schema.LangRuby:
		return hashStyle
	case schema.LangPHP:
		return phpStyle
	case schema.LangLua:
		return luaStyle
	case schema.LangFortran:
		return fortranStyle
	default:
		return cStyle
	}
}

// CountNLOC counts the lines holding code, skipping blank and comment-only lines.
// It works on tokens alone and does not recognize comment markers inside strings.
func CountNLOC(source []byte, lang schema.Language) int {
	syn := syntaxFor(lang)
	inBlock := false
	nloc := 0
	for _, line := range bytes.Split(source, []byte("\n")) {
		hasCode := false
		for i := 0; i < len(line); {
			rest := line[i:]
			if inBlock {
				end := bytes.Index(rest, []byte(syn.blockEnd))
				if end < 0 {
					break
				}
				inBlock = false
				i += end + len(syn.blockEnd)
				continue
			}
			if syn.blockStart != "" && bytes.HasPrefix(rest, []byte(syn.blockStart)) {
				inBlock = true
				i += len(syn.blockStart)
				continue
			}
			if hasLinePrefix(rest, syn.line) {
				break
			}
			if !isSpace(line[i]) {
				hasCode = true
			}
			i++
		}
		if hasCode {
			nloc++
		}
	}
	return nloc
}

func hasLinePrefix(b []byte, prefixes []string) bool {
	for _, p := range prefixes {
		if bytes.HasPrefix(b, []byte(p)) {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}
