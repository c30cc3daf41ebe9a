package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("parse error")
	ErrNoRoot   = fmt.Errorf("%w: no root element", ErrParse)
	ErrFragment = fmt.Errorf("%w: bad fragment", ErrParse)
)
