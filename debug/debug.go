// Package debug holds environment gated debugging switches.
//
// Each switch is read once at start up from a JSONT_DEBUG_* variable
// holding a value accepted by strconv.ParseBool.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Diff     bool
	Patch    bool
	Merge    bool
	Match    bool
	Template bool
	Eval     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("JSONT_DEBUG_DIFF")
	d.Patch = boolEnv("JSONT_DEBUG_PATCH")
	d.Merge = boolEnv("JSONT_DEBUG_MERGE")
	d.Match = boolEnv("JSONT_DEBUG_MATCH")
	d.Template = boolEnv("JSONT_DEBUG_TEMPLATE")
	d.Eval = boolEnv("JSONT_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Patch() bool {
	return d.Patch
}
func Merge() bool {
	return d.Merge
}
func Match() bool {
	return d.Match
}
func Template() bool {
	return d.Template
}
func Eval() bool {
	return d.Eval
}
