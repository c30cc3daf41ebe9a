package mergeop

import "github.com/signadot/xmod/ir"

// Symbol is a registered "mod" tag.
type Symbol interface {
	Name
	Instance(node *ir.Node) (Op, error)
}

type Name interface {
	String() string
	IsFind() bool
	IsCommand() bool
}

type finderName string

func (s finderName) String() string {
	return string(s)
}
func (s finderName) IsFind() bool    { return true }
func (s finderName) IsCommand() bool { return false }

type commandName string

func (s commandName) String() string {
	return string(s)
}
func (s commandName) IsFind() bool {
	return false
}
func (s commandName) IsCommand() bool {
	return true
}

// auxName names tags that only carry data for an enclosing tag.
type auxName string

func (s auxName) String() string {
	return string(s)
}
func (s auxName) IsFind() bool {
	return false
}
func (s auxName) IsCommand() bool {
	return false
}
