package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/comeback-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPromptTemplate loads the system prompt template
func (l *Loader) GetSystemPromptTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.SystemPromptTmpl)), nil
}

// GetUserPromptTemplate loads the user prompt template
func (l *Loader) GetUserPromptTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.UserPromptTmpl)), nil
}
