// Package accessors holds structs binding unexported members.
package accessors

// Counter binds its members through getter and setter methods.
type Counter struct {
	name  string `xmlbind:"name,attr"`
	count int    `xmlbind:"count"`
	notes string
}

func (c Counter) Name() string { return c.name }

func (c *Counter) SetName(v string) { c.name = v }

func (c Counter) Count() int { return c.count }

func (c *Counter) SetCount(v int) { c.count = v }

func (c Counter) Notes() string { return c.notes }

// Sealed can't be modified after creation.
type Sealed struct {
	id string `xmlbind:"id,attr"`
}

func (s Sealed) ID() string { return s.id }

// Point is built through NewPoint, which doesn't take y.
type Point struct {
	x int `xmlbind:"x,attr"`
	y int `xmlbind:"y,attr"`
}

func NewPoint(x int) Point { return Point{x: x} }

func (p Point) X() int { return p.x }

func (p Point) Y() int { return p.y }
