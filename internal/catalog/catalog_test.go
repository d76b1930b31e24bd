package catalog

import (
	"testing"

	"github.com/vovakirdan/emoji-fusion/internal/config"
)

func defaultCatalog() *Catalog {
	return New(config.DefaultFusionConfig().Themes)
}

func TestDefaultCatalog(t *testing.T) {
	c := defaultCatalog()

	if c.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", c.Len())
	}

	fruits, ok := c.Get("fruits")
	if !ok || !fruits.Free() {
		t.Errorf("fruits = %+v, %v; want a free theme", fruits, ok)
	}

	human, ok := c.Get("human")
	if !ok || human.RequiredScore != 30000 || human.RequiredCoins != 1500 {
		t.Errorf("human = %+v", human)
	}

	if _, ok := c.Get("lava"); ok {
		t.Error("Get(lava) should fail")
	}

	if got := c.List()[0].ID; got != "fruits" {
		t.Errorf("first theme = %q, want fruits", got)
	}
}

func TestEligible(t *testing.T) {
	c := defaultCatalog()

	tests := []struct {
		best int
		want []string
	}{
		{0, []string{"fruits"}},
		{2499, []string{"fruits"}},
		{2500, []string{"animals", "fruits"}},
		{7600, []string{"animals", "fruits", "ocean", "wild_animals"}},
	}
	for _, tt := range tests {
		got := c.Eligible(tt.best)
		if len(got) != len(tt.want) {
			t.Errorf("Eligible(%d) = %v, want %v", tt.best, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Eligible(%d) = %v, want %v", tt.best, got, tt.want)
				break
			}
		}
	}
}

func TestNewSkipsDuplicates(t *testing.T) {
	c := New([]config.ThemeEntry{
		{ID: "a", Name: "A", Category: "x"},
		{ID: "a", Name: "Other"},
		{ID: "b", Category: "y"},
		{ID: ""},
	})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if a, _ := c.Get("a"); a.Name != "A" {
		t.Errorf("a.Name = %q, want first definition", a.Name)
	}
	if b, _ := c.Get("b"); b.Name != "b" {
		t.Errorf("b.Name = %q, want id as fallback name", b.Name)
	}
	if cats := c.Categories(); len(cats) != 2 || cats[0] != "x" {
		t.Errorf("Categories() = %v", cats)
	}
}
