package debug

import (
	"os"
	"strconv"
)

type debug struct {
	LoadEnv bool
	Compile bool
	Find    bool
	Command bool
	Patch   bool
	Build   bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.LoadEnv = boolEnv("XMOD_DEBUG_LOAD_ENV")
	d.Compile = boolEnv("XMOD_DEBUG_COMPILE")
	d.Find = boolEnv("XMOD_DEBUG_FIND")
	d.Command = boolEnv("XMOD_DEBUG_COMMAND")
	d.Patch = boolEnv("XMOD_DEBUG_PATCH")
	d.Build = boolEnv("XMOD_DEBUG_BUILD")
	d.Eval = boolEnv("XMOD_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func LoadEnv() bool {
	return d.LoadEnv
}
func Compile() bool {
	return d.Compile
}
func Find() bool {
	return d.Find
}
func Command() bool {
	return d.Command
}
func Patch() bool {
	return d.Patch
}
func Build() bool {
	return d.Build
}
func Eval() bool {
	return d.Eval
}
