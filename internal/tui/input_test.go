package tui

import (
	"strings"
	"testing"
)

func TestEditRuneAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "a", "a"},
		{"append letter", "hel", "l", "hell"},
		{"append digit", "abc", "1", "abc1"},
		{"append space", "hello", " ", "hello "},
		{"append special", "abc", "@", "abc@"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"single char", "a", ""},
		{"longer string", "hello", "hell"},
		{"empty does nothing", "", ""},
		{"multi-byte rune removed whole", "hellé", "hell"},
		{"trailing emoji removed whole", "hello😀", "hello"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, "backspace")
			if got != tc.want {
				t.Errorf("editRune(%q, backspace) = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditRuneIgnoresNamedKeys(t *testing.T) {
	keys := []string{"enter", "esc", "up", "down", "left", "right",
		"ctrl+c", "ctrl+s", "alt+f", "tab", "shift+tab", "f1", "pgup", "home", "end"}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			if got := editRune("hello", key); got != "hello" {
				t.Errorf("editRune(hello, %q) = %q, want unchanged", key, got)
			}
		})
	}
}

func TestEditRunePaste(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"paste into empty", "", "asha@linkcode.dev", "asha@linkcode.dev"},
		{"paste appends", "hi ", "there", "hi there"},
		{"paste clamped at limit", strings.Repeat("a", maxInputLen-3), "abcdef", strings.Repeat("a", maxInputLen-3) + "abc"},
		{"paste rejected at limit", strings.Repeat("a", maxInputLen), "hello", strings.Repeat("a", maxInputLen)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editRune(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestMaskString(t *testing.T) {
	if got := maskString("secret"); got != "••••••" {
		t.Errorf("maskString(secret) = %q", got)
	}
	if got := maskString(""); got != "" {
		t.Errorf("maskString(empty) = %q", got)
	}
}

func TestFormFieldMasksValue(t *testing.T) {
	row := formField("password", "hunter2", false, true)
	if strings.Contains(row, "hunter2") {
		t.Errorf("masked field leaked value: %q", row)
	}
}

func TestCycleNext(t *testing.T) {
	cycle := []string{"", "female", "male", "other"}
	tests := []struct {
		current   string
		direction int
		want      string
	}{
		{"", 1, "female"},
		{"female", 1, "male"},
		{"other", 1, ""},
		{"", -1, "other"},
		{"female", -1, ""},
		{"bogus", 1, "female"},
	}
	for _, tc := range tests {
		t.Run(tc.current+"/"+tc.want, func(t *testing.T) {
			if got := cycleNext(cycle, tc.current, tc.direction); got != tc.want {
				t.Errorf("cycleNext(%q, %d) = %q, want %q", tc.current, tc.direction, got, tc.want)
			}
		})
	}
}

func TestTruncateToHeightLimitsLines(t *testing.T) {
	input := "line1\nline2\nline3\nline4\nline5\n"
	result := truncateToHeight(input, 3)

	if n := strings.Count(result, "\n"); n > 3 {
		t.Errorf("truncateToHeight produced %d newlines, want <= 3", n)
	}
	if !strings.Contains(result, "line1") {
		t.Errorf("result missing first line: %q", result)
	}
	if strings.Contains(result, "line4") {
		t.Errorf("result should not contain line4: %q", result)
	}
	if got := truncateToHeight(input, 0); got != input {
		t.Errorf("maxLines <= 0 should return input unchanged")
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"empty", "", 5, ""},
		{"CJK", "你好世界", 3, "你好…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncStr(tt.s, tt.maxLen); got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}
