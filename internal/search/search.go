// Package search builds the LIKE filters shared by catalog and user
// listings.
package search

import "strings"

// Escape is appended after each LIKE placeholder built from Pattern.
const Escape = ` ESCAPE '\'`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Pattern returns an unanchored LIKE pattern for a lower-cased column.
// Wildcards in term match literally.
func Pattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}
