package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/retroblast-engine/ase"
)

type countingDecoder struct {
	calls   atomic.Int32
	release chan struct{} // when set, decodes block until closed
}

func (d *countingDecoder) decode(path string) (*ase.Sprite, error) {
	d.calls.Add(1)
	if d.release != nil {
		<-d.release
	}
	if path == "broken.aseprite" {
		return nil, ase.ErrInvalidMagicNumber
	}
	return &ase.Sprite{Layers: []ase.Layer{{Name: path}}}, nil
}

func newCache(t *testing.T, d *countingDecoder, opts ...Option) *Cache {
	t.Helper()
	c, err := New(append([]Option{WithDecoder(d.decode)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestCacheHit(t *testing.T) {
	d := &countingDecoder{}
	c := newCache(t, d)

	a, err := c.Load("sprites/hero.aseprite")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Load("sprites/../sprites/hero.aseprite")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second load returned a different sprite")
	}
	if n := d.calls.Load(); n != 1 {
		t.Errorf("decodes = %d, want 1", n)
	}
	if !c.Contains("sprites/hero.aseprite") || c.Len() != 1 {
		t.Errorf("Contains/Len = %v/%d", c.Contains("sprites/hero.aseprite"), c.Len())
	}
}

func TestCacheEviction(t *testing.T) {
	d := &countingDecoder{}
	c := newCache(t, d, WithSize(2))

	for _, p := range []string{"a", "b", "c"} {
		if _, err := c.Load(p); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 2 || c.Contains("a") {
		t.Errorf("Len = %d, Contains(a) = %v; want 2, false", c.Len(), c.Contains("a"))
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len after Purge = %d", c.Len())
	}
}

func TestCacheErrorNotCached(t *testing.T) {
	d := &countingDecoder{}
	c := newCache(t, d)

	for range 2 {
		if _, err := c.Load("broken.aseprite"); !errors.Is(err, ase.ErrInvalidMagicNumber) {
			t.Fatalf("err = %v, want ErrInvalidMagicNumber", err)
		}
	}
	if n := d.calls.Load(); n != 2 {
		t.Errorf("decodes = %d, want 2", n)
	}
}

func TestCacheConcurrentLoadsShareDecode(t *testing.T) {
	d := &countingDecoder{release: make(chan struct{})}
	c := newCache(t, d)

	const n = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		results [n]*ase.Sprite
	)
	started.Add(n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			s, err := c.Load("shared.aseprite")
			if err != nil {
				t.Error(err)
			}
			results[i] = s
		}()
	}
	started.Wait()
	close(d.release)
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("load %d returned a different sprite", i)
		}
	}
	// Goroutines that arrive after the first decode finished hit the cache.
	if calls := d.calls.Load(); calls != 1 {
		t.Errorf("decodes = %d, want 1", calls)
	}
}

func TestLoadAll(t *testing.T) {
	d := &countingDecoder{}
	c := newCache(t, d)

	paths := make([]string, 10)
	for i := range paths {
		paths[i] = fmt.Sprintf("sprite%d.aseprite", i)
	}
	sprites, err := c.LoadAll(context.Background(), paths, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sprites {
		if s.Layers[0].Name != paths[i] {
			t.Errorf("sprites[%d] = %s, want %s", i, s.Layers[0].Name, paths[i])
		}
	}

	_, err = c.LoadAll(context.Background(), []string{"ok.aseprite", "broken.aseprite"}, 0)
	if !errors.Is(err, ase.ErrInvalidMagicNumber) {
		t.Errorf("err = %v, want ErrInvalidMagicNumber", err)
	}
}

func TestLoadAllCanceled(t *testing.T) {
	c := newCache(t, &countingDecoder{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.LoadAll(ctx, []string{"a", "b"}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
