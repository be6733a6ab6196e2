package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSet_Default(t *testing.T) {
	set := Default()
	if !strings.Contains(set.System(), "bin_maj_label") {
		t.Error("system prompt should describe the label names")
	}
	if !strings.Contains(set.System(), "0-Kein") {
		t.Error("system prompt should name the background category")
	}

	user, err := set.User("hallo welt")
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if user != "Tweet: hallo welt\n" {
		t.Errorf("User() = %q", user)
	}
}

func TestSet_Load(t *testing.T) {
	t.Run("overrides from files", func(t *testing.T) {
		dir := t.TempDir()
		systemPath := filepath.Join(dir, "system.txt")
		userPath := filepath.Join(dir, "user.tmpl")
		if err := os.WriteFile(systemPath, []byte("custom system"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(userPath, []byte("Label this: {{.Text}}"), 0o644); err != nil {
			t.Fatal(err)
		}

		set, err := Load(systemPath, userPath)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if set.System() != "custom system" {
			t.Errorf("System() = %q", set.System())
		}
		user, err := set.User("xyz")
		if err != nil {
			t.Fatalf("User() error = %v", err)
		}
		if user != "Label this: xyz" {
			t.Errorf("User() = %q", user)
		}
	})

	t.Run("empty paths keep defaults", func(t *testing.T) {
		set, err := Load("", "")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if set.System() != systemPrompt || set.UserTemplate() != userPromptTmpl {
			t.Error("empty paths should keep the embedded prompts")
		}
	})

	t.Run("rejects unknown variables", func(t *testing.T) {
		userPath := filepath.Join(t.TempDir(), "user.tmpl")
		if err := os.WriteFile(userPath, []byte("{{.Tweet}}"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load("", userPath); err == nil {
			t.Fatal("expected error for unknown template variable")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent"), ""); err == nil {
			t.Fatal("expected error for missing system prompt file")
		}
	})
}

func TestSet_Hashes(t *testing.T) {
	system, user := Default().Hashes()
	if len(system) != 64 || len(user) != 64 {
		t.Errorf("hashes should be hex SHA256: %q %q", system, user)
	}
	if system == user {
		t.Error("system and user prompts should hash differently")
	}
}

func TestExtractVariables(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Hello {{.Name}}, you have {{.Count}} items", []string{"Count", "Name"}},
		{"{{.Text}} and {{ .Text }}", []string{"Text"}},
		{"no variables here", nil},
	}
	for _, tc := range cases {
		got := ExtractVariables(tc.text)
		if len(got) != len(tc.want) {
			t.Errorf("ExtractVariables(%q) = %v, want %v", tc.text, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ExtractVariables(%q) = %v, want %v", tc.text, got, tc.want)
				break
			}
		}
	}
}
