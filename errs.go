package xmod

import "github.com/signadot/xmod/mergeop"

var (
	ErrMalformed     = mergeop.ErrMalformed
	ErrRegexSyntax   = mergeop.ErrRegexSyntax
	ErrRequiredMatch = mergeop.ErrRequiredMatch
)
