package popover

// KeyEscape is the key name that closes open popovers.
const KeyEscape = "esc"

// Document delivers document-level pointer-down and key-down events to the
// popovers that are currently open. Popovers subscribe when they open and
// unsubscribe when they close or are disposed, so closed popovers never see
// these events.
type Document struct {
	subs  map[*Popover]struct{}
	order []*Popover
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{subs: make(map[*Popover]struct{})}
}

// Subscribers returns the number of popovers listening.
func (d *Document) Subscribers() int {
	return len(d.subs)
}

// PointerDown closes every open popover that does not contain (x, y). It
// reports whether any popover closed.
func (d *Document) PointerDown(x, y int) bool {
	changed := false
	for _, p := range d.snapshot() {
		if !p.Contains(x, y) {
			changed = p.Close() || changed
		}
	}
	return changed
}

// KeyDown closes every open popover on Escape. It reports whether any popover
// closed.
func (d *Document) KeyDown(key string) bool {
	if key != KeyEscape {
		return false
	}
	changed := false
	for _, p := range d.snapshot() {
		changed = p.Close() || changed
	}
	return changed
}

func (d *Document) subscribe(p *Popover) {
	if _, ok := d.subs[p]; ok {
		return
	}
	d.subs[p] = struct{}{}
	d.order = append(d.order, p)
}

func (d *Document) unsubscribe(p *Popover) {
	if _, ok := d.subs[p]; !ok {
		return
	}
	delete(d.subs, p)
	for i, q := range d.order {
		if q == p {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// snapshot copies the subscriber list so handlers may unsubscribe while it is
// walked.
func (d *Document) snapshot() []*Popover {
	out := make([]*Popover, len(d.order))
	copy(out, d.order)
	return out
}
