// Package carousel implements the rotating slide index behind the hero
// slider, the offer banner, and the gallery.
//
// A Carousel is safe for concurrent use: HTTP handlers read it while Run
// advances it on a timer.
package carousel

import (
	"context"
	"sync"
	"time"
)

// Step moves index i by delta within n slides, wrapping at both ends.
// It returns 0 when n is not positive.
func Step(i, n, delta int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// Carousel tracks the current slide out of a fixed number of slides.
type Carousel struct {
	n         int
	onAdvance func(int)

	mu      sync.Mutex
	current int
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithOnAdvance registers a callback run after every timed advance with the
// new index.
func WithOnAdvance(f func(index int)) Option {
	return func(c *Carousel) { c.onAdvance = f }
}

// New returns a carousel over n slides starting at slide 0.
func New(n int, opts ...Option) *Carousel {
	c := &Carousel{n: max(n, 0)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return c.n }

// Current returns the index of the visible slide.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Next advances one slide, wrapping to the first, and returns the new index.
func (c *Carousel) Next() int { return c.move(1) }

// Prev goes back one slide, wrapping to the last, and returns the new index.
func (c *Carousel) Prev() int { return c.move(-1) }

func (c *Carousel) move(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n == 0 {
		return 0
	}
	c.current = Step(c.current, c.n, delta)
	return c.current
}

// Run advances the carousel every interval until ctx is done.
func (c *Carousel) Run(ctx context.Context, interval time.Duration) {
	if c.n == 0 || interval <= 0 {
		<-ctx.Done()
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			i := c.Next()
			if c.onAdvance != nil {
				c.onAdvance(i)
			}
		}
	}
}
