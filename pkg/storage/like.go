package storage

import "strings"

// EscapeLike escapes the SQL LIKE wildcards in s using backslash, so a
// literal prefix can be matched with `LIKE ? ESCAPE '\'`. Shared by the
// SQL-backed drivers' ResultPrefix implementations.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
