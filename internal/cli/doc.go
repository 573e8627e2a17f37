// Package cli implements the pronounce command line tool.
//
// Words come from positional arguments and from a batch file with one word
// per line. Each word is resolved through the same pipeline as the HTTP
// endpoint; different words are resolved concurrently, but the lookup of a
// single word stays strictly sequential. Results are printed as a table or
// as JSON lines.
package cli
