// Package urlrecord models the URL objects attached to a URN and normalizes
// loosely shaped caller input into them.
//
// Callers may describe URLs in several ways:
//
//	urlrecord.RawAddress("https://example.org/doc")
//	urlrecord.WithPriority("https://example.org/doc", 1)
//	urlrecord.New("https://example.org/doc")
//	urlrecord.Collection{urlrecord.RawAddress("https://a"), urlrecord.WithPriority("https://b", 2)}
//
// NormalizeMany maps each element to a *Record and keeps nil placeholders for
// elements that do not describe exactly one URL. Strict turns such a
// placeholder into an *InputError instead.
package urlrecord
