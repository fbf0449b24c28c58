package theme

import "testing"

func TestUseSwitchesFlavor(t *testing.T) {
	t.Cleanup(func() { Apply(Mocha) })

	Use("light")
	if Current.Name != "light" || Base != Latte.Base {
		t.Fatalf("Use(light): current=%q base=%q", Current.Name, Base)
	}
	if GlamourStyle() != "light" {
		t.Fatalf("GlamourStyle() = %q", GlamourStyle())
	}

	Use("sepia")
	if Current.Name != "dark" || Text != Mocha.Text {
		t.Fatalf("Use(sepia) should fall back to dark, got %q", Current.Name)
	}
}
