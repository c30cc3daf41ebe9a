// Package mergeop compiles and runs patch instructions against ir trees.
//
// # Overview
//
// A patch tree mixes plain content with control tags in the "mod"
// namespace. Control tags are looked up by name in a registry of symbols
// (see Register and Lookup) and instantiated into ops once, by Compile. The
// resulting Program holds no reference to the patch tree and may be applied
// to any number of targets.
//
// Ops come in three kinds:
//
//   - Finders select direct children of a context element:
//     findName, findLike, findWithChildLike, findComposite and par.
//   - Commands mutate a context element: setAttributes, removeAttributes,
//     setValue, removeTag and insertByFind.
//   - Auxiliary tags carry data for another tag: selector and par.
//
// Elements in the "mod-append", "mod-prepend" and "mod-overwrite"
// namespaces are payload commands: a copy of the element, with its
// namespace removed, is added to the context. Elements in "mod-insert" are
// payload for insertByFind only.
//
// # Finding
//
// Every finder computes its matches over the direct children of the context
// in document order, then applies slicing:
//
//	reverse  reverse the matches first
//	start    skip this many matches
//	limit    keep at most this many (-1 keeps all)
//	panic    fail with ErrRequiredMatch when nothing is left
//
// When a find tag appears among commands, the commands nested under it run
// against each of its matches in turn.
//
// # Errors
//
// Malformed instructions are reported by Compile as *InstructionError
// values wrapping ErrMalformed, or *RegexError values wrapping
// ErrRegexSyntax. Both carry the breadcrumb path of the offending tag.
// Apply only fails with ErrRequiredMatch.
package mergeop
