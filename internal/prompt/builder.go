package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

const (
	// MinIntensity and MaxIntensity bound the tone slider
	MinIntensity = 1
	MaxIntensity = 10

	// DefaultIntensity is the slider's starting position
	DefaultIntensity = 5

	// MaxTokens is the completion token ceiling
	MaxTokens = 1000

	baseTemperature     = 0.7
	temperaturePerLevel = 0.03
	mildToneCeiling     = 3
	moderateToneCeiling = 7
)

// Tone labels shown next to the intensity slider
const (
	ToneMild     = "温和"
	ToneModerate = "适中"
	ToneStrong   = "强烈"
)

// Builder renders the system/user prompt pair for a rebuttal request
type Builder struct {
	system *template.Template
	user   *template.Template
}

// NewPromptBuilder parses the embedded prompt templates
func NewPromptBuilder() (*Builder, error) {
	loader := NewPromptLoader()

	systemText, err := loader.GetSystemPromptTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load system prompt: %w", err)
	}
	userText, err := loader.GetUserPromptTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load user prompt: %w", err)
	}

	system, err := template.New("system").Parse(systemText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system prompt: %w", err)
	}
	user, err := template.New("user").Parse(userText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user prompt: %w", err)
	}

	return &Builder{system: system, user: user}, nil
}

type promptData struct {
	OpponentText string
	Intensity    int
}

// BuildSystemPrompt instructs the model to answer with three "回应N：" items at the given tone
func (b *Builder) BuildSystemPrompt(intensity int) (string, error) {
	return render(b.system, promptData{Intensity: intensity})
}

// BuildUserPrompt restates the opponent's words and asks for three responses
func (b *Builder) BuildUserPrompt(opponentText string, intensity int) (string, error) {
	return render(b.user, promptData{OpponentText: opponentText, Intensity: intensity})
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// Temperature maps intensity onto sampling temperature: 1 -> 0.73, 10 -> 1.0
func Temperature(intensity int) float64 {
	return baseTemperature + float64(intensity)*temperaturePerLevel
}

// ClampIntensity keeps an intensity inside the slider range
func ClampIntensity(intensity int) int {
	if intensity < MinIntensity {
		return MinIntensity
	}
	if intensity > MaxIntensity {
		return MaxIntensity
	}
	return intensity
}

// ToneLabel describes an intensity the way the slider does
func ToneLabel(intensity int) string {
	switch {
	case intensity <= mildToneCeiling:
		return ToneMild
	case intensity <= moderateToneCeiling:
		return ToneModerate
	default:
		return ToneStrong
	}
}
