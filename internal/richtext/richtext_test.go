package richtext

import "testing"

func TestText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain passes through", "mercy and compassion", "mercy and compassion"},
		{"strips tags", "<p>mercy <strong>and</strong> compassion</p>", "mercy and compassion"},
		{"collapses whitespace", "<div>mercy\n\n  and\tcompassion</div>", "mercy and compassion"},
		{"nested markup", "<article><h1>Badr</h1><p>The first major battle.</p></article>", "BadrThe first major battle."},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Text(tc.in); got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
