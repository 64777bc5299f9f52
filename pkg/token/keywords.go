package token

// keywords is the reserved-word set. Several entries (loops, functions,
// aggregates) are reserved for forward compatibility and have no grammar yet.
var keywords = map[string]struct{}{
	"if": {}, "else": {}, "while": {}, "for": {}, "switch": {}, "case": {},
	"return": {}, "int": {}, "float": {}, "string": {}, "boolean": {},
	"void": {}, "break": {}, "continue": {}, "true": {}, "false": {},
	"null": {}, "do": {}, "enum": {}, "struct": {}, "typedef": {},
	"const": {}, "static": {}, "public": {}, "private": {}, "protected": {},
	"class": {}, "new": {}, "this": {}, "super": {}, "import": {},
	"package": {}, "include": {},
}

// typeKeywords are the keywords that start a declaration.
var typeKeywords = map[string]struct{}{
	"int":     {},
	"float":   {},
	"string":  {},
	"boolean": {},
}

// LookupIdent returns Keyword if ident is reserved, otherwise Identifier.
func LookupIdent(ident string) Kind {
	if _, ok := keywords[ident]; ok {
		return Keyword
	}
	return Identifier
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}
