package dummy

import (
	"strconv"

	"github.com/funvibe/levelc/internal/config"
)

// Generator hands out fresh variable names for one compilation run.
// Names are prefix+N with N increasing monotonically; a candidate that
// matches an identifier already reserved (seen in the source or handed out
// before) is skipped, so every name is unique within the run.
type Generator struct {
	prefix   string
	next     int
	reserved map[string]struct{}
	issued   int
}

// NewGenerator creates a generator whose first candidate is prefix+start.
func NewGenerator(prefix string, start int) *Generator {
	if prefix == "" {
		prefix = config.DefaultDummyPrefix
	}
	return &Generator{
		prefix:   prefix,
		next:     start,
		reserved: make(map[string]struct{}),
	}
}

// Reserve marks names as taken.
func (g *Generator) Reserve(names ...string) {
	for _, name := range names {
		g.reserved[name] = struct{}{}
	}
}

// IsReserved reports whether name can no longer be handed out.
func (g *Generator) IsReserved(name string) bool {
	_, ok := g.reserved[name]
	return ok
}

// Next returns a name never returned before and never reserved.
func (g *Generator) Next() string {
	for {
		name := g.prefix + strconv.Itoa(g.next)
		g.next++
		if _, taken := g.reserved[name]; taken {
			continue
		}
		g.reserved[name] = struct{}{}
		g.issued++
		return name
	}
}

// Issued returns how many names Next has handed out.
func (g *Generator) Issued() int {
	return g.issued
}

func (g *Generator) Prefix() string {
	return g.prefix
}
