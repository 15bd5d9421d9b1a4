package popover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func inside(x0, y0, x1, y1 int) Bounds {
	return func(x, y int) bool {
		return x >= x0 && x < x1 && y >= y0 && y < y1
	}
}

func TestDocumentSubscriptionFollowsOpenState(t *testing.T) {
	doc := NewDocument()
	p := New(1, WithDocument(doc))

	assert.Equal(t, 0, doc.Subscribers())
	p.Toggle()
	assert.Equal(t, 1, doc.Subscribers())
	p.Toggle()
	assert.Equal(t, 0, doc.Subscribers())

	p.HoverEnter(PointerMouse)
	assert.Equal(t, 1, doc.Subscribers())
	timer, _ := p.HoverLeave(PointerMouse)
	p.TimerFired(timer.ID)
	assert.Equal(t, 0, doc.Subscribers())
}

func TestDocumentOutsidePointerDownCloses(t *testing.T) {
	doc := NewDocument()
	p := New(2, WithDocument(doc), WithBounds(inside(0, 0, 10, 5)))
	p.Toggle()

	assert.False(t, doc.PointerDown(3, 2), "pointer-down inside keeps it open")
	assert.True(t, p.IsOpen())

	assert.True(t, doc.PointerDown(20, 2))
	assert.False(t, p.IsOpen())
	assert.False(t, p.Pinned())
	assert.Equal(t, 0, doc.Subscribers())
}

func TestDocumentEscapeClosesAll(t *testing.T) {
	doc := NewDocument()
	a := New(1, WithDocument(doc))
	b := New(1, WithDocument(doc))
	a.Toggle()
	b.HoverEnter(PointerMouse)

	assert.False(t, doc.KeyDown("enter"))
	assert.True(t, doc.KeyDown(KeyEscape))
	assert.False(t, a.IsOpen())
	assert.False(t, b.IsOpen())
	assert.Equal(t, 0, doc.Subscribers())
}

func TestDocumentIgnoresClosedPopovers(t *testing.T) {
	doc := NewDocument()
	p := New(1, WithDocument(doc))
	assert.False(t, doc.KeyDown(KeyEscape))
	assert.False(t, doc.PointerDown(0, 0))
	assert.Equal(t, Closed, p.State())
}

func TestDisposeUnsubscribes(t *testing.T) {
	doc := NewDocument()
	p := New(1, WithDocument(doc))
	p.HoverEnter(PointerMouse)
	timer, _ := p.HoverLeave(PointerMouse)

	p.Dispose()
	assert.Equal(t, 0, doc.Subscribers())
	assert.False(t, p.TimerFired(timer.ID))
}

func TestCloseCancelsPendingTimer(t *testing.T) {
	doc := NewDocument()
	p := New(1, WithDocument(doc))
	p.HoverEnter(PointerMouse)
	timer, _ := p.HoverLeave(PointerMouse)

	doc.KeyDown(KeyEscape)
	_, has := p.Pending()
	assert.False(t, has)

	p.HoverEnter(PointerMouse)
	assert.False(t, p.TimerFired(timer.ID), "timer from the previous open must not close the new one")
	assert.True(t, p.IsOpen())
}
