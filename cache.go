package shx

import (
	"math"
	"sync/atomic"
)

// scaledKey identifies one derived cache entry: a character code at an
// exact requested size. The size keys by bit pattern, so distinct float
// values never collide.
type scaledKey struct {
	code uint16
	size uint64 // math.Float64bits of the requested size
}

// shapeCache memoizes glyph interpretation for one font. The unscaled
// map holds the canonical parse per code; an entry is nil for a code
// whose program failed, so a broken glyph is interpreted once and never
// poisons its neighbours. The scaled map holds per-size derivations of
// those parses. The font's facade lock serializes map access; the
// counters are atomic so they can be bumped from either layer.
type shapeCache struct {
	unscaled map[uint16]*Shape
	scaled   map[scaledKey]*Shape
	hits     atomic.Uint64
	misses   atomic.Uint64
}

func newShapeCache() *shapeCache {
	return &shapeCache{
		unscaled: make(map[uint16]*Shape),
		scaled:   make(map[scaledKey]*Shape),
	}
}

// release drops every cached shape. Counters keep running.
func (c *shapeCache) release() {
	c.unscaled = make(map[uint16]*Shape)
	c.scaled = make(map[scaledKey]*Shape)
}

// CacheStats is a snapshot of one font's cache activity. Hits and
// misses count lookups across both cache layers.
type CacheStats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

func (c *shapeCache) stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.unscaled) + len(c.scaled),
	}
}

// shapeForCode returns the canonical unscaled shape for code,
// interpreting the glyph program on first use. Interpretation runs at
// most once per code for the lifetime of the font (until Release).
// Returns nil for codes the font does not define and for glyphs whose
// program failed. The caller must hold the font lock; depth carries the
// sub-shape nesting level and fails closed past the limit.
func (f *Font) shapeForCode(code uint16, depth int) (*Shape, error) {
	if depth > maxSubShapeDepth {
		return nil, ErrRecursionLimit
	}
	if s, ok := f.cache.unscaled[code]; ok {
		f.cache.hits.Add(1)
		return s, nil
	}
	bytecode, ok := f.content.Glyphs[code]
	if !ok {
		return nil, nil
	}
	f.cache.misses.Add(1)
	s, err := f.interpret(bytecode, depth)
	if err != nil {
		Logger().Warn("glyph interpretation failed", "code", code, "err", err)
		f.cache.unscaled[code] = nil
		return nil, err
	}
	f.cache.unscaled[code] = s
	return s, nil
}

// charShape derives the glyph for code at the requested size: a deep
// copy of the canonical parse, scaled uniformly so the font's cap
// height maps to size. Both the derivation and its return value are
// independent copies; callers may mutate what they get back. The caller
// must hold the font lock.
func (f *Font) charShape(code uint16, size float64) *Shape {
	if code == 0 {
		return nil
	}
	key := scaledKey{code: code, size: math.Float64bits(size)}
	if s, ok := f.cache.scaled[key]; ok {
		f.cache.hits.Add(1)
		return s.Clone()
	}
	base, err := f.shapeForCode(code, 0)
	if err != nil || base == nil {
		return nil
	}
	s := base.Clone()
	ref := float64(f.content.BaseUp)
	if ref == 0 {
		ref = 1
	}
	s.Scale(size / ref)
	f.cache.scaled[key] = s
	return s.Clone()
}
