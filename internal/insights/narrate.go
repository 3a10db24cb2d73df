package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/ganttline/internal/llm"
)

const narratorSystemPrompt = `Você é um gerente de projetos objetivo. Responda apenas com texto simples em português do Brasil, sem markdown.`

const narratorPromptTemplate = `Resuma a situação do cronograma abaixo em um parágrafo curto (no máximo 4 frases).
Comece pelo que é mais urgente e termine com uma ação concreta para a próxima semana.

Achados:
%s
Regras:
- Use apenas os fatos listados
- Cite nomes de tarefas e projetos quando existirem
- Não use listas nem formatação`

// ErrNothingToNarrate is returned when there are no insights to summarize.
var ErrNothingToNarrate = errors.New("no insights to narrate")

// Narrate asks the model for a short paragraph summarizing insights.
func Narrate(ctx context.Context, client llm.Client, insights []Insight) (string, error) {
	if len(insights) == 0 {
		return "", ErrNothingToNarrate
	}

	reply, err := client.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: narratorSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf(narratorPromptTemplate, formatFindings(insights))},
	})
	if err != nil {
		return "", fmt.Errorf("narrating insights: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func formatFindings(insights []Insight) string {
	var sb strings.Builder
	for _, in := range insights {
		fmt.Fprintf(&sb, "- [%s] %s: %s\n", in.Level, in.Title, in.Description)
	}
	return sb.String()
}
