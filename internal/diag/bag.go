package diag

import (
	"fmt"
	"slices"
)

// Bag collects messages in insertion order. A non-positive max means no limit.
type Bag struct {
	items []Message
	max   int
}

func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 8
	}
	return &Bag{
		items: make([]Message, 0, capHint),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(m Message) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, m)
	return true
}

// HasErrors возвращает true, если есть хотя бы одна диагностика с Severity >= Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Message {
	return b.items
}

// Merge appends messages of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Filter keeps only messages for which keep returns true.
func (b *Bag) Filter(keep func(*Message) bool) {
	b.items = slices.DeleteFunc(b.items, func(m Message) bool {
		return !keep(&m)
	})
}

// Transform rewrites every message in place.
func (b *Bag) Transform(fn func(*Message)) {
	for i := range b.items {
		fn(&b.items[i])
	}
}

// простая дедупликация (по Code+Context+Text)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Message, 0, len(b.items))
	for _, m := range b.items {
		key := fmt.Sprintf("%s:%s:%s", m.Code.ID(), m.Context, m.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, m)
	}
	b.items = newitems
}
