package agent

import (
	"testing"

	"research_portal/pkg/core/llm"
)

func TestGetProvider(t *testing.T) {
	mgr := NewManager(Config{
		ActiveProvider: "deepseek",
		Agents: map[string]AgentConfig{
			"extraction": {Provider: "gemini", Model: "gemini-2.5-flash"},
		},
	})

	if _, ok := mgr.GetProvider("extraction").(*llm.GeminiProvider); !ok {
		t.Error("extraction agent should honor its per-agent override")
	}
	if _, ok := mgr.GetProvider("analysis").(*llm.DeepSeekProvider); !ok {
		t.Error("unconfigured agent should use the active provider")
	}
}

func TestGetProvider_Fallback(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "nonexistent"})
	if _, ok := mgr.GetProvider("extraction").(*llm.GeminiProvider); !ok {
		t.Error("unknown active provider should fall back to gemini")
	}
}

func TestGetModel(t *testing.T) {
	mgr := NewManager(Config{
		Agents: map[string]AgentConfig{
			"extraction": {Model: "gemini-2.5-pro"},
		},
	})
	if got := mgr.GetModel("extraction"); got != "gemini-2.5-pro" {
		t.Errorf("model = %q", got)
	}
	if got := mgr.GetModel("analysis"); got != "" {
		t.Errorf("unconfigured agent model = %q, want empty", got)
	}
}

func TestSetGlobalProvider(t *testing.T) {
	mgr := NewManager(Config{ActiveProvider: "gemini"})

	if err := mgr.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("SetGlobalProvider: %v", err)
	}
	if mgr.GetActiveProvider() != "deepseek" {
		t.Errorf("active = %q", mgr.GetActiveProvider())
	}

	if err := mgr.SetGlobalProvider("openai"); err == nil {
		t.Error("unknown provider must be rejected")
	}
}

func TestListProviders(t *testing.T) {
	names := NewManager(Config{}).ListProviders()
	if len(names) != 2 || names[0] != "deepseek" || names[1] != "gemini" {
		t.Errorf("providers = %v", names)
	}
}
