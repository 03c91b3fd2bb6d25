// Package atlas implements a shelf-packed rectangle cache with
// frame-based eviction, used as the draw cache for rasterized glyphs.
package atlas

import "errors"

// ErrOutOfSpace is returned by Put when no shelf can take the rect even
// after evicting everything not used this frame. The caller is expected
// to grow the backing texture and Reset the cache.
var ErrOutOfSpace = errors.New("atlas: out of space")

// ErrTooLarge is returned by Put for a rect bigger than the whole atlas.
var ErrTooLarge = errors.New("atlas: rect larger than atlas")

// Rect is an allocated region of the atlas, in pixels.
type Rect struct {
	X, Y, W, H uint32
}

// shelfHeightStep quantizes shelf heights so rects of similar height
// share shelves instead of opening a new one per pixel of difference.
const shelfHeightStep = 8

type shelf struct {
	y, height uint32
	// cursor is the x position of the next free spot.
	cursor    uint32
	lastFrame uint64
	count     int
}

type entry struct {
	rect      Rect
	shelf     int
	lastFrame uint64
}

// Cache packs keyed rects into a fixed-size area, top to bottom in
// shelves. Rects unused for a whole frame may be evicted shelf by shelf
// when space runs out.
//
// Cache is not safe for concurrent use.
type Cache[K comparable] struct {
	width, height uint32
	shelves       []shelf
	entries       map[K]*entry
	keysByShelf   map[int][]K
	nextY         uint32
	frame         uint64
}

// NewCache creates a Cache covering width by height pixels.
func NewCache[K comparable](width, height uint32) *Cache[K] {
	return &Cache[K]{
		width:       width,
		height:      height,
		entries:     make(map[K]*entry),
		keysByShelf: make(map[int][]K),
	}
}

// Size returns the area covered by the cache.
func (c *Cache[K]) Size() [2]uint32 { return [2]uint32{c.width, c.height} }

// Reset drops every entry and adopts a new size, after the backing
// texture was reallocated.
func (c *Cache[K]) Reset(width, height uint32) {
	c.width = width
	c.height = height
	c.shelves = c.shelves[:0]
	c.nextY = 0
	clear(c.entries)
	clear(c.keysByShelf)
}

// NextFrame advances the eviction clock. Entries not touched between two
// calls become candidates for eviction.
func (c *Cache[K]) NextFrame() { c.frame++ }

// Get returns the rect cached for key, marking it used this frame.
func (c *Cache[K]) Get(key K) (Rect, bool) {
	e, ok := c.entries[key]
	if !ok {
		return Rect{}, false
	}
	e.lastFrame = c.frame
	c.shelves[e.shelf].lastFrame = c.frame
	return e.rect, true
}

// Put allocates a w by h rect for key and returns it. The content of the
// rect is the caller's to fill. Put with an already cached key returns
// the existing rect.
func (c *Cache[K]) Put(key K, w, h uint32) (Rect, error) {
	if r, ok := c.Get(key); ok {
		return r, nil
	}
	if w > c.width || h > c.height {
		return Rect{}, ErrTooLarge
	}

	if i := c.findShelf(w, h); i >= 0 {
		return c.place(key, i, w, h), nil
	}
	if i := c.openShelf(h); i >= 0 {
		return c.place(key, i, w, h), nil
	}
	if i := c.evictShelf(w, h); i >= 0 {
		return c.place(key, i, w, h), nil
	}
	return Rect{}, ErrOutOfSpace
}

// findShelf picks the fullest existing shelf that fits the rect without
// wasting more than a height step.
func (c *Cache[K]) findShelf(w, h uint32) int {
	best := -1
	var bestCursor uint32
	for i := range c.shelves {
		s := &c.shelves[i]
		if s.height < h || s.height >= h+shelfHeightStep {
			continue
		}
		if s.cursor+w > c.width {
			continue
		}
		if best < 0 || s.cursor > bestCursor {
			best = i
			bestCursor = s.cursor
		}
	}
	return best
}

// openShelf appends a fresh shelf tall enough for h, if vertical space
// remains.
func (c *Cache[K]) openShelf(h uint32) int {
	height := (h + shelfHeightStep - 1) / shelfHeightStep * shelfHeightStep
	if c.nextY+height > c.height {
		return -1
	}
	c.shelves = append(c.shelves, shelf{y: c.nextY, height: height})
	c.nextY += height
	return len(c.shelves) - 1
}

// evictShelf clears the least recently used shelf that fits the rect and
// was not touched this frame, so nothing drawn right now disappears.
func (c *Cache[K]) evictShelf(w, h uint32) int {
	best := -1
	var bestFrame uint64
	for i := range c.shelves {
		s := &c.shelves[i]
		if s.height < h || s.lastFrame >= c.frame {
			continue
		}
		if best < 0 || s.lastFrame < bestFrame {
			best = i
			bestFrame = s.lastFrame
		}
	}
	if best < 0 {
		return -1
	}
	for _, key := range c.keysByShelf[best] {
		delete(c.entries, key)
	}
	delete(c.keysByShelf, best)
	c.shelves[best].cursor = 0
	c.shelves[best].count = 0
	return best
}

func (c *Cache[K]) place(key K, i int, w, h uint32) Rect {
	s := &c.shelves[i]
	rect := Rect{X: s.cursor, Y: s.y, W: w, H: h}
	s.cursor += w
	s.lastFrame = c.frame
	s.count++
	c.entries[key] = &entry{rect: rect, shelf: i, lastFrame: c.frame}
	c.keysByShelf[i] = append(c.keysByShelf[i], key)
	return rect
}
