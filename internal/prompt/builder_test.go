package prompt

import (
	"math"
	"strings"
	"testing"
)

func TestNewPromptBuilder(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}
	if builder == nil {
		t.Fatal("NewPromptBuilder() returned nil")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}

	prompt, err := builder.BuildSystemPrompt(7)
	if err != nil {
		t.Fatalf("BuildSystemPrompt() returned error: %v", err)
	}

	for _, want := range []string{"回应1：", "回应2：", "回应3：", "7/10", "100"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildSystemPrompt() missing %q", want)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}

	prompt, err := builder.BuildUserPrompt("你根本不懂", 3)
	if err != nil {
		t.Fatalf("BuildUserPrompt() returned error: %v", err)
	}

	if !strings.Contains(prompt, "对方说：你根本不懂") {
		t.Errorf("BuildUserPrompt() does not restate the opponent text: %s", prompt)
	}
	if !strings.Contains(prompt, "3/10") {
		t.Errorf("BuildUserPrompt() does not mention intensity: %s", prompt)
	}
}

func TestBuildUserPromptDoesNotEscape(t *testing.T) {
	builder, err := NewPromptBuilder()
	if err != nil {
		t.Fatalf("NewPromptBuilder() returned error: %v", err)
	}

	prompt, err := builder.BuildUserPrompt(`<b>"quoted" & bold</b>`, 5)
	if err != nil {
		t.Fatalf("BuildUserPrompt() returned error: %v", err)
	}
	if !strings.Contains(prompt, `<b>"quoted" & bold</b>`) {
		t.Errorf("BuildUserPrompt() altered the opponent text: %s", prompt)
	}
}

func TestTemperature(t *testing.T) {
	tests := []struct {
		intensity int
		want      float64
	}{
		{1, 0.73},
		{5, 0.85},
		{10, 1.0},
	}

	for _, tt := range tests {
		got := Temperature(tt.intensity)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Temperature(%d) = %v, want %v", tt.intensity, got, tt.want)
		}
	}
}

func TestClampIntensity(t *testing.T) {
	if got := ClampIntensity(0); got != MinIntensity {
		t.Errorf("ClampIntensity(0) = %d", got)
	}
	if got := ClampIntensity(42); got != MaxIntensity {
		t.Errorf("ClampIntensity(42) = %d", got)
	}
	if got := ClampIntensity(6); got != 6 {
		t.Errorf("ClampIntensity(6) = %d", got)
	}
}

func TestToneLabel(t *testing.T) {
	tests := map[int]string{
		1:  ToneMild,
		3:  ToneMild,
		4:  ToneModerate,
		7:  ToneModerate,
		8:  ToneStrong,
		10: ToneStrong,
	}
	for intensity, want := range tests {
		if got := ToneLabel(intensity); got != want {
			t.Errorf("ToneLabel(%d) = %s, want %s", intensity, got, want)
		}
	}
}
