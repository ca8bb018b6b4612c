package xxhash

import "github.com/hupe1980/xxregion/region"

// cursor reads forward through a region and keeps the first read error.
type cursor struct {
	r   region.Region
	pos int
	err error
}

func (c *cursor) u8() uint8 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.Uint8(c.pos)
	c.err = err
	c.pos++
	return v
}

func (c *cursor) u32() uint32 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.Uint32(c.pos)
	c.err = err
	c.pos += 4
	return v
}

func (c *cursor) u64() uint64 {
	if c.err != nil {
		return 0
	}
	v, err := c.r.Uint64(c.pos)
	c.err = err
	c.pos += 8
	return v
}
