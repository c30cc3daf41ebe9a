package mergeop

import (
	"errors"
	"fmt"

	"github.com/signadot/xmod/ir"
)

var (
	ErrMalformed     = errors.New("malformed instruction")
	ErrRegexSyntax   = fmt.Errorf("%w: regular expression syntax", ErrMalformed)
	ErrRequiredMatch = errors.New("required match not found")
)

// InstructionError locates a problem with one instruction tag.
type InstructionError struct {
	Err  error
	Tag  string
	Path string
	Msg  string
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("%s: <%s> %s (%s)", e.Err, e.Tag, e.Msg, e.Path)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

func malformed(node *ir.Node, format string, args ...any) error {
	return &InstructionError{
		Err:  ErrMalformed,
		Tag:  node.QName(),
		Path: node.Path(),
		Msg:  fmt.Sprintf(format, args...),
	}
}

// RegexError reports a pattern that does not compile. Location says which
// part of the instruction holds the pattern, such as "type or child-type",
// "name attribute" or "selector tag value".
type RegexError struct {
	Location string
	Pattern  string
	Path     string
	Err      error
}

func (e *RegexError) Error() string {
	path := e.Path
	if path == "" {
		path = "?"
	}
	return fmt.Sprintf("%s: check %s at %s: %q: %v", ErrRegexSyntax, e.Location, path, e.Pattern, e.Err)
}

func (e *RegexError) Unwrap() []error {
	return []error{ErrRegexSyntax, e.Err}
}

// withPath fills in the breadcrumb of a *RegexError produced while building
// a filter for node.
func withPath(err error, node *ir.Node) error {
	var re *RegexError
	if errors.As(err, &re) && re.Path == "" {
		re.Path = node.Path()
	}
	return err
}
