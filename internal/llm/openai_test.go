package llm

import "testing"

func TestToOpenAIMessages(t *testing.T) {
	msgs := toOpenAIMessages([]Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: "USER", Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
		{Role: "tool", Content: "other"},
	})
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].OfSystem == nil {
		t.Error("expected system message first")
	}
	if msgs[1].OfUser == nil || msgs[3].OfUser == nil {
		t.Error("expected unknown roles to map to user")
	}
	if msgs[2].OfAssistant == nil {
		t.Error("expected assistant message")
	}
}

func TestToLangChainMessages(t *testing.T) {
	msgs := toLangChainMessages([]Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	want := []string{"system", "human", "ai"}
	for i, m := range msgs {
		if string(m.Role) != want[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, want[i])
		}
	}
}

func TestFirstEnv(t *testing.T) {
	t.Setenv("LMSTUDIO_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	if got := firstEnv("LMSTUDIO_API_KEY", "OPENAI_API_KEY"); got != "sk-test" {
		t.Errorf("firstEnv() = %q, want sk-test", got)
	}
}
