package embedded

import (
	_ "embed"
)

// Prompt templates
//
//go:embed data/prompts/system_prompt.tmpl
var SystemPromptTmpl []byte

//go:embed data/prompts/user_prompt.tmpl
var UserPromptTmpl []byte

// Browser page served at /
//
//go:embed data/web/index.html
var IndexHTML []byte
