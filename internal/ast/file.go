package ast

// ParsedFile is the parser's top-level output: module identity, the
// import list, the top-level statement block, and retained block
// comments for tooling.
type ParsedFile struct {
	ModuleName string // empty when no `module` declaration was present
	Imports    []*ImportDecl
	Program    *Program
	Comments   []string
}
