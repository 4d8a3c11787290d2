// Package directive turns portable annotation directives into the
// attribute text a concrete toolchain understands.
//
// Resolution is a pure function: the expansion depends only on the
// directive, the capability flags, and the build-mode switches, and
// identical inputs always produce identical text. Degradation is the
// only failure mode. A directive the toolchain cannot express becomes
// a weaker attribute or an empty expansion, never an error and never
// an unsupported construct.
//
// Resolution happens in two layers. Plan picks the attribute atoms for
// a directive kind; Resolve fills their argument slots from a concrete
// directive. The header renderer reuses Plan with macro parameters in
// the slots instead, so both paths share one copy of the dispatch
// rules.
package directive
