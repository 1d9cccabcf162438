package schema

import (
	"path"
	"slices"
	"strings"
)

// Language is one of the supported source languages.
type Language string

// All languages supported.
const (
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangFortran    Language = "fortran"
	LangGo         Language = "go"
	LangJava       Language = "java"
	LangJavaScript Language = "javascript"
	LangLua        Language = "lua"
	LangObjectiveC Language = "objective-c"
	LangPHP        Language = "php"
	LangPython     Language = "python"
	LangRuby       Language = "ruby"
	LangRust       Language = "rust"
	LangScala      Language = "scala"
	LangSwift      Language = "swift"
	LangTypeScript Language = "typescript"
)

// LanguageExtensions maps each supported language to the file endings it claims.
// Some endings (.h, .mm) belong to more than one language.
var LanguageExtensions = map[Language][]string{
	LangC:          {".c", ".h"},
	LangCPP:        {".cpp", ".cc", ".mm", ".cxx", ".h", ".hpp"},
	LangCSharp:     {".cs"},
	LangFortran:    {".f70", ".f90", ".f95", ".f03", ".f08", ".f", ".for", ".ftn", ".fpp"},
	LangGo:         {".go"},
	LangJava:       {".java"},
	LangJavaScript: {".js"},
	LangLua:        {".lua"},
	LangObjectiveC: {".m", ".mm"},
	LangPHP:        {".php"},
	LangPython:     {".py"},
	LangRuby:       {".rb"},
	LangRust:       {".rs"},
	LangScala:      {".scala"},
	LangSwift:      {".swift"},
	LangTypeScript: {".ts"},
}

// AllLanguages returns the supported languages in sorted order.
func AllLanguages() []Language {
	langs := make([]Language, 0, len(LanguageExtensions))
	for lang := range LanguageExtensions {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// EndingsFor returns the deduplicated file endings claimed by the given languages.
// Unknown languages contribute nothing.
func EndingsFor(langs []Language) []string {
	var endings []string
	for _, lang := range langs {
		for _, ext := range LanguageExtensions[lang] {
			if !slices.Contains(endings, ext) {
				endings = append(endings, ext)
			}
		}
	}
	return endings
}

// Extension returns the extension of p the way splitext does: the suffix
// starting at the last dot of the base name, ignoring leading dots.
// ".bashrc" has no extension, "a.tar.gz" has ".gz".
func Extension(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	trimmed := strings.TrimLeft(base, ".")
	idx := strings.LastIndex(trimmed, ".")
	if idx < 0 {
		return ""
	}
	return trimmed[idx:]
}

// HasEnding reports whether the extension of p is one of endings.
func HasEnding(p string, endings []string) bool {
	return slices.Contains(endings, Extension(p))
}
