package prompts

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"sort"
	"text/template"
)

// Set is one system/user prompt pairing. Prediction runs record the
// hashes of the set they used so results stay attributable to exact
// prompt versions.
type Set struct {
	systemText string
	userText   string
	user       *template.Template
}

// Default returns the embedded prompt set.
func Default() *Set {
	return &Set{
		systemText: systemPrompt,
		userText:   userPromptTmpl,
		user:       userTemplate,
	}
}

// Load reads a prompt set from files. An empty path keeps the embedded
// default for that half. The user template may reference only {{.Text}}.
func Load(systemPath, userPath string) (*Set, error) {
	set := Default()

	if systemPath != "" {
		data, err := os.ReadFile(systemPath)
		if err != nil {
			return nil, fmt.Errorf("read system prompt: %w", err)
		}
		set.systemText = string(data)
	}

	if userPath != "" {
		data, err := os.ReadFile(userPath)
		if err != nil {
			return nil, fmt.Errorf("read user prompt: %w", err)
		}
		text := string(data)
		for _, v := range ExtractVariables(text) {
			if v != "Text" {
				return nil, fmt.Errorf("user prompt references unknown variable %q", v)
			}
		}
		tmpl, err := template.New("user").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parse user prompt: %w", err)
		}
		set.userText = text
		set.user = tmpl
	}

	return set, nil
}

// System returns the system prompt text.
func (s *Set) System() string {
	return s.systemText
}

// UserTemplate returns the raw user prompt template.
func (s *Set) UserTemplate() string {
	return s.userText
}

// User builds the user prompt for one tweet.
func (s *Set) User(text string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Text string }{Text: text}
	if err := s.user.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute user prompt: %w", err)
	}
	return buf.String(), nil
}

// Hashes returns the SHA256 hashes of the system and user prompts.
func (s *Set) Hashes() (system, user string) {
	return HashText(s.systemText), HashText(s.userText)
}

// variablePattern matches Go template variable references like
// {{.VarName}} or {{ .VarName }}, including nested fields.
var variablePattern = regexp.MustCompile(`\{\{\s*\.([a-zA-Z_][a-zA-Z0-9_.]*)\s*\}\}`)

// ExtractVariables extracts template variable names from a Go template
// string, sorted and deduplicated.
func ExtractVariables(text string) []string {
	matches := variablePattern.FindAllStringSubmatch(text, -1)
	seen := make(map[string]bool)
	var vars []string

	for _, match := range matches {
		if len(match) > 1 {
			varName := match[1]
			if !seen[varName] {
				seen[varName] = true
				vars = append(vars, varName)
			}
		}
	}

	sort.Strings(vars)
	return vars
}

// HashText returns a SHA256 hash of the text for change detection.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}
