package encode

import (
	"strings"

	"github.com/fatih/color"
)

type ColorAttr int

const (
	TagColor ColorAttr = iota
	ModTagColor
	AttrNameColor
	AttrValueColor
	TextColor
	CommentColor
	SepColor
	DeclColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			TagColor:       color.RGB(128, 168, 196).SprintfFunc(),
			ModTagColor:    color.RGB(196, 96, 16).SprintfFunc(),
			AttrNameColor:  color.RGB(196, 168, 128).SprintfFunc(),
			AttrValueColor: color.RGB(8, 196, 16).SprintfFunc(),
			TextColor:      color.RGB(198, 198, 46).SprintfFunc(),
			CommentColor:   color.BlueString,
			SepColor:       color.RGB(255, 0, 196).SprintfFunc(),
			DeclColor:      color.RGB(96, 96, 96).SprintfFunc(),
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
