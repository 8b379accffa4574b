package plan

import "strconv"

// Context is the generation context of one compilation unit. It owns the counters used
// to manufacture unique local names, so independent units never share mutable state.
type Context struct {
	counters map[string]int
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{counters: make(map[string]int)}
}

// Unique returns prefix followed by the next number for that prefix: "item0", "item1".
func (c *Context) Unique(prefix string) string {
	n := c.counters[prefix]
	c.counters[prefix] = n + 1

	return prefix + strconv.Itoa(n)
}
