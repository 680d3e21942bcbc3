// Package filter selects URL records with expr-lang expressions.
//
// Expressions see the record as URL, URN, Owner, Created, LastModified,
// Self, Priority and HasPriority, plus the helpers contains, startsWith,
// endsWith, lower, upper, host and daysSince:
//
//	f, err := filter.Compile(`host(URL) == "example.org" && (!HasPriority || Priority < 3)`)
//	matched, err := filter.Apply(f, records)
package filter
