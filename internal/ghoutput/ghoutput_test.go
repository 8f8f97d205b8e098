package ghoutput

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteToAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(path, []byte("existing=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := WriteTo(path, map[string]string{"output": "site/index.html", "bytes": "42", " ": "skipped"})
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	raw, _ := os.ReadFile(path)
	if want := "existing=1\nbytes=42\noutput=site/index.html\n"; string(raw) != want {
		t.Errorf("file = %q, want %q", raw, want)
	}
}

func TestWriteToMultiline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	if err := WriteTo(path, map[string]string{"blocks": "a\nb\n"}); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	raw, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	delim := strings.TrimPrefix(lines[0], "blocks<<")
	if delim == lines[0] || lines[3] != delim || lines[1] != "a" || lines[2] != "b" {
		t.Errorf("unexpected heredoc output %q", raw)
	}
}

func TestWriteWithoutEnvIsNoop(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")
	if err := Write(map[string]string{"a": "b"}); err != nil {
		t.Errorf("Write() error = %v", err)
	}
}
