package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Surface is the host-provided container that widgets mount their elements into.
type Surface struct {
	id       string
	children []templ.Component
}

func NewSurface(id string) *Surface {
	return &Surface{id: id}
}

// Mount attaches c to the surface; it renders after everything mounted before it.
func (s *Surface) Mount(c templ.Component) {
	s.children = append(s.children, c)
}

// Len reports how many elements are mounted.
func (s *Surface) Len() int {
	return len(s.children)
}

// Render implements templ.Component.
func (s *Surface) Render(ctx context.Context, w io.Writer) error {
	return surfaceView(s.id, s.children).Render(ctx, w)
}
