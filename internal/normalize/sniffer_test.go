package normalize

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"json object", `{"title":"t"}`, HintJSON},
		{"json array", `[{"title":"t"}]`, HintJSON},
		{"fenced json in prose", "Sure!\n```json\n{\"a\":1}\n```", HintJSON},
		{"yaml key line", "title: something\nsteps:\n  - a", HintYAML},
		{"markdown heading", "## Test One\nsome body", HintMarkdown},
		{"heading beats key line", "# Cases\ntitle: nested", HintMarkdown},
		{"plain prose", "nothing structured here", HintText},
		{"empty", "", HintText},
		{"whitespace", "  \n\t ", HintText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.raw); got != tt.want {
				t.Errorf("detectFormat(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSniffOrder_HintFirst(t *testing.T) {
	parsers := sniffOrder(`{"title":"t"}`, "markdown")
	if parsers[0].name != HintMarkdown {
		t.Errorf("first parser = %q, want markdown hint honored", parsers[0].name)
	}
	if parsers[1].name != HintJSON {
		t.Errorf("second parser = %q, want detected json", parsers[1].name)
	}
	if len(parsers) != len(allParsers) {
		t.Errorf("got %d parsers, want all %d as fall-through", len(parsers), len(allParsers))
	}
}

func TestSniffOrder_NoHint(t *testing.T) {
	parsers := sniffOrder("plain prose", "")
	if parsers[0].name != HintText {
		t.Errorf("first parser = %q, want detected text", parsers[0].name)
	}
	seen := map[string]bool{}
	for _, p := range parsers {
		if seen[p.name] {
			t.Errorf("parser %q appears twice", p.name)
		}
		seen[p.name] = true
	}
}

func TestSniffOrder_UnknownHintIgnored(t *testing.T) {
	parsers := sniffOrder(`{"title":"t"}`, "toml")
	if parsers[0].name != HintJSON {
		t.Errorf("first parser = %q, want detection to win over unknown hint", parsers[0].name)
	}
}
