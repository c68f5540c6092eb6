package guardrail

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type mockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "SAFE", nil
}

func TestValidateInput_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		expected bool
	}{
		{"Safe_Query", "SAFE", nil, true},
		{"Safe_With_Whitespace", "  safe \n", nil, true},
		{"Unsafe_Query", "UNSAFE", nil, false},
		{"Chatty_Response_Is_Unsafe", "The query is SAFE", nil, false},
		{"Provider_Error_Fails_Open", "", errors.New("provider down"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&mockLLM{
				OnGenerate: func(ctx context.Context, prompt string) (string, error) {
					return tt.response, tt.err
				},
			})

			if got := svc.ValidateInput(context.Background(), "any question"); got != tt.expected {
				t.Errorf("ValidateInput got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateInput_SendsQueryInPrompt(t *testing.T) {
	var seenPrompt string
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return "SAFE", nil
		},
	})

	svc.ValidateInput(context.Background(), "who owns the action items?")

	if !strings.Contains(seenPrompt, "who owns the action items?") {
		t.Errorf("Prompt missing the query: %q", seenPrompt)
	}
	if !strings.Contains(seenPrompt, "SAFE or UNSAFE") {
		t.Errorf("Prompt missing verdict instruction: %q", seenPrompt)
	}
}

func TestVerifyGrounding_EmptyContexts(t *testing.T) {
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			t.Fatal("LLM should not be called with empty contexts")
			return "", nil
		},
	})

	passed, answer := svc.VerifyGrounding(context.Background(), "some answer", nil)

	if passed {
		t.Error("Expected not grounded with empty contexts")
	}
	if answer != "I don't have enough meeting context to verify this answer." {
		t.Errorf("Wrong fallback answer: %q", answer)
	}
}

func TestVerifyGrounding_Passed(t *testing.T) {
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			return "VERDICT: PASSED\nREASON: fully supported\nSAFE_RESPONSE: the original answer", nil
		},
	})

	passed, answer := svc.VerifyGrounding(context.Background(), "the original answer", []string{"ctx"})

	if !passed {
		t.Error("Expected grounded verdict")
	}
	if answer != "the original answer" {
		t.Errorf("Answer got %q", answer)
	}
}

func TestVerifyGrounding_FailedUsesSafeResponse(t *testing.T) {
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			return "VERDICT: FAILED\nREASON: invented numbers\nSAFE_RESPONSE: The context does not mention revenue.", nil
		},
	})

	passed, answer := svc.VerifyGrounding(context.Background(), "revenue was $5M", []string{"ctx"})

	if passed {
		t.Error("Expected failed verdict")
	}
	if answer != "The context does not mention revenue." {
		t.Errorf("Safe answer got %q", answer)
	}
}

func TestVerifyGrounding_ErrorFailsOpen(t *testing.T) {
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("timeout")
		},
	})

	passed, answer := svc.VerifyGrounding(context.Background(), "original", []string{"ctx"})

	if !passed || answer != "original" {
		t.Errorf("Fail-open expected (true, original), got (%v, %q)", passed, answer)
	}
}

func TestVerifyGrounding_TruncatesContexts(t *testing.T) {
	contexts := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}
	var seenPrompt string
	svc := NewService(&mockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			seenPrompt = prompt
			return "VERDICT: PASSED", nil
		},
	})

	svc.VerifyGrounding(context.Background(), "answer", contexts)

	if strings.Contains(seenPrompt, "c6") || strings.Contains(seenPrompt, "c7") {
		t.Errorf("Contexts beyond the cap leaked into the prompt")
	}
	if !strings.Contains(seenPrompt, "c5") {
		t.Errorf("Fifth context should be included")
	}
}

func TestParseGroundingVerdict_NoSafeResponseSection(t *testing.T) {
	passed, answer := parseGroundingVerdict("VERDICT: FAILED\nREASON: unsupported", "fallback answer")

	if passed {
		t.Error("Expected failed verdict")
	}
	if answer != "fallback answer" {
		t.Errorf("Expected fallback answer, got %q", answer)
	}
}
