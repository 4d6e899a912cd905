package translate

import "strings"

// canonicalForms maps a keyword to a short usage hint shown alongside
// low-confidence translations.
var canonicalForms = map[string]string{
	"PRINT": `PRINT "text" or PRINT variable`,
	"LET":   "LET VAR = value",
	"FOR":   "FOR I = start TO end ... NEXT I",
	"IF":    "IF condition THEN action",
	"GOTO":  "GOTO line",
	"INPUT": "INPUT VAR",
	"REM":   "REM comment text",
	"END":   "END",
}

// Suggest derives usage hints from the keywords present in a statement.
// Order follows the keyword order in the statement so hints read naturally.
func Suggest(statement string) []string {
	upper := strings.ToUpper(statement)
	var hints []string
	seen := make(map[string]bool)
	for _, field := range strings.Fields(upper) {
		form, ok := canonicalForms[field]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		hints = append(hints, form)
	}
	return hints
}
