package csn

import "sync/atomic"

// Clock hands out CSNs in generation order, starting right after Initial.
type Clock struct {
	last atomic.Int64
}

func NewClock() *Clock {
	c := &Clock{}
	c.last.Store(int64(Initial))
	return c
}

// Next returns the next CSN; safe for concurrent use.
func (c *Clock) Next() CSN {
	return CSN(c.last.Add(1))
}
