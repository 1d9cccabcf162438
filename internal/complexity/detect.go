package complexity

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/huangsam/outlier/schema"
	"github.com/src-d/enry/v2"
)

// enryNames maps linguist language names onto supported languages.
var enryNames = map[string]schema.Language{
	"C":                 schema.LangC,
	"C++":               schema.LangCPP,
	"C#":                schema.LangCSharp,
	"Fortran":           schema.LangFortran,
	"Fortran Free Form": schema.LangFortran,
	"Go":                schema.LangGo,
	"Java":              schema.LangJava,
	"JavaScript":        schema.LangJavaScript,
	"Lua":               schema.LangLua,
	"Objective-C":       schema.LangObjectiveC,
	"Objective-C++":     schema.LangObjectiveC,
	"PHP":               schema.LangPHP,
	"Python":            schema.LangPython,
	"Ruby":              schema.LangRuby,
	"Rust":              schema.LangRust,
	"Scala":             schema.LangScala,
	"Swift":             schema.LangSwift,
	"TypeScript":        schema.LangTypeScript,
}

// candidates returns the languages claiming the extension of path, sorted.
func candidates(path string) []schema.Language {
	ext := schema.Extension(path)
	var langs []schema.Language
	for lang, endings := range schema.LanguageExtensions {
		if slices.Contains(endings, ext) {
			langs = append(langs, lang)
		}
	}
	slices.Sort(langs)
	return langs
}

// DetectLanguage picks the language of a file from its extension.
// Extensions shared by several languages (.h, .mm) are settled by content.
func DetectLanguage(path string, content []byte) (schema.Language, error) {
	langs := candidates(path)
	switch len(langs) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Base(path))
	case 1:
		return langs[0], nil
	}
	if lang, ok := enryNames[enry.GetLanguage(filepath.Base(path), content)]; ok && slices.Contains(langs, lang) {
		return lang, nil
	}
	return langs[0], nil
}
