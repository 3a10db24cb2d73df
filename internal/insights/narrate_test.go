package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/ganttline/internal/llm"
)

type fakeClient struct {
	reply    string
	err      error
	messages []llm.Message
}

func (f *fakeClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(context.Context, []llm.Message, any) error {
	return errors.New("not implemented")
}

func TestNarrate(t *testing.T) {
	client := &fakeClient{reply: "  Duas tarefas atrasadas. Priorize a migração.\n"}
	insights := []Insight{
		{Level: LevelCritical, Title: "2 tarefas atrasadas", Description: `"Migração" está 5 dias atrasada.`},
		{Level: LevelInfo, Title: "Resumo geral", Description: "4 tarefas no total."},
	}

	got, err := Narrate(t.Context(), client, insights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Duas tarefas atrasadas. Priorize a migração." {
		t.Errorf("got %q", got)
	}

	if len(client.messages) != 2 || client.messages[0].Role != llm.RoleSystem {
		t.Fatalf("unexpected messages %+v", client.messages)
	}
	prompt := client.messages[1].Content
	for _, want := range []string{"- [critical] 2 tarefas atrasadas", "- [info] Resumo geral: 4 tarefas no total."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestNarrate_Errors(t *testing.T) {
	if _, err := Narrate(t.Context(), &fakeClient{}, nil); !errors.Is(err, ErrNothingToNarrate) {
		t.Errorf("expected ErrNothingToNarrate, got %v", err)
	}

	boom := errors.New("connection refused")
	_, err := Narrate(t.Context(), &fakeClient{err: boom}, []Insight{{Level: LevelInfo, Title: "x"}})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
