package lifelog

import (
	"reflect"
	"strings"
	"testing"
)

func nonEmptyLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func TestFlatten(t *testing.T) {
	md := "# Walk to the park\n\n- Fed the ducks\n- Ate *ice cream*\n\nHeaded home at **5pm**."
	got := nonEmptyLines(Flatten(md))
	want := []string{
		"Walk to the park",
		"Fed the ducks",
		"Ate ice cream",
		"Headed home at 5pm.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten lines = %q, want %q", got, want)
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(""); got != "" {
		t.Errorf("Flatten(\"\") = %q, want empty", got)
	}
}

func TestFlattenPlainText(t *testing.T) {
	if got := Flatten("just a sentence"); got != "just a sentence" {
		t.Errorf("Flatten = %q, want %q", got, "just a sentence")
	}
}
