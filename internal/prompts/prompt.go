// Package prompts holds the chat prompts used for tweet labeling.
// Embedded .tmpl files are the defaults; a Set loaded from files
// overrides them for prompt experiments without rebuilding.
package prompts

import (
	_ "embed"
	"text/template"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))
