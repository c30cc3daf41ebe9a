package mergeop

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

var ErrSymbolExists = errors.New("symbol exists")

func Register(s Symbol) error {
	key := s.String()
	if strings.Contains(key, ":") {
		return fmt.Errorf("symbol %q must not contain ':'", key)
	}
	mu.Lock()
	defer mu.Unlock()
	_, present := d[key]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[key] = s
	return nil
}

func init() {
	Register(FindName())
	Register(FindLike())
	Register(FindWithChildLike())
	Register(FindComposite())
	Register(Par())
	Register(Selector())

	Register(SetAttributes())
	Register(RemoveAttributes())
	Register(SetValue())
	Register(RemoveTag())
	Register(InsertByFind())
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	return res
}
