/*
Package normalize maps loosely typed slide payloads onto the closed element
union of package domain.

Historic payloads describe the same element in several shapes: a bare string,
an object with text and options, a paragraph array, a kind field such as
"table" or "image", or a tagged {type, options} object. Element evaluates one
payload against a fixed priority order and always returns exactly one
domain.Element; payloads that fit no case come back as domain.Unrecognized so
the caller can log and skip them.

Geometry is kept unresolved (inches or percentages) until the builder knows the
canvas size. Missing or malformed fields fall back to the defaults in
defaults.go.
*/
package normalize
