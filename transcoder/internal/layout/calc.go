package layout

import (
	"sync"

	"github.com/wippyai/bincode/transcoder/internal/types"
)

// Info is the encoded size of a descriptor. Size is meaningful only when
// Fixed is true.
type Info struct {
	FieldOffs map[string]int
	Size      int
	Fixed     bool
}

var variable = Info{}

type Calculator struct {
	cache map[*types.Type]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*types.Type]Info),
	}
}

func (c *Calculator) Calculate(t *types.Type) Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculate(t, make(map[*types.Type]bool))
}

func (c *Calculator) calculate(t *types.Type, active map[*types.Type]bool) Info {
	if t == nil {
		return variable
	}
	if width, ok := t.Kind.FixedWidth(); ok {
		return Info{Size: width, Fixed: true}
	}
	if cached, ok := c.cache[t]; ok {
		return cached
	}
	// A type that contains itself can never be fixed size.
	if active[t] {
		return variable
	}
	active[t] = true
	defer delete(active, t)

	var info Info

	switch t.Kind {
	case types.KindTuple:
		info = c.calculateTuple(t, active)
	case types.KindRecord:
		info = c.calculateRecord(t, active)
	case types.KindVariant:
		info = c.calculateVariant(t, active)
	default:
		// char, string, bytes, sequence, option and map vary per value
		info = variable
	}

	c.cache[t] = info
	return info
}

func (c *Calculator) calculateTuple(t *types.Type, active map[*types.Type]bool) Info {
	size := 0
	for _, item := range t.Items {
		itemInfo := c.calculate(item, active)
		if !itemInfo.Fixed {
			return variable
		}
		size += itemInfo.Size
	}
	return Info{Size: size, Fixed: true}
}

func (c *Calculator) calculateRecord(t *types.Type, active map[*types.Type]bool) Info {
	fieldOffs := make(map[string]int, len(t.Fields))
	offset := 0

	for _, field := range t.Fields {
		fieldInfo := c.calculate(field.Type, active)
		if !fieldInfo.Fixed {
			return variable
		}
		fieldOffs[field.Name] = offset
		offset += fieldInfo.Size
	}

	return Info{
		Size:      offset,
		Fixed:     true,
		FieldOffs: fieldOffs,
	}
}

// Variants are fixed only when every payload has the same fixed size.
func (c *Calculator) calculateVariant(t *types.Type, active map[*types.Type]bool) Info {
	if len(t.Cases) == 0 {
		return variable
	}

	payload := -1
	for _, cs := range t.Cases {
		caseInfo := c.calculate(cs.Type, active)
		if !caseInfo.Fixed {
			return variable
		}
		if payload >= 0 && caseInfo.Size != payload {
			return variable
		}
		payload = caseInfo.Size
	}

	return Info{Size: 4 + payload, Fixed: true}
}
