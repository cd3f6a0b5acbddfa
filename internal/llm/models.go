package llm

import "fmt"

// ModelInfo describes one selectable model.
type ModelInfo struct {
	ID          int
	Name        string
	Path        string
	Provider    string
	BaseURL     string
	Category    string
	Description string
}

// Catalog of switchable models. Hand-maintained on purpose: the list is small
// and changes rarely.
var availableModels = []ModelInfo{
	{
		ID:          1,
		Name:        "deepseek-chat",
		Path:        "deepseek-chat",
		Provider:    "deepseek",
		BaseURL:     "https://api.deepseek.com",
		Category:    "Chat",
		Description: "General chat and synthesis",
	},
	{
		ID:          2,
		Name:        "deepseek-reasoner",
		Path:        "deepseek-reasoner",
		Provider:    "deepseek",
		BaseURL:     "https://api.deepseek.com",
		Category:    "Analysis",
		Description: "Slower, stronger reasoning",
	},
	{
		ID:          3,
		Name:        "gpt-oss-120b",
		Path:        "accounts/fireworks/models/gpt-oss-120b",
		Provider:    "fireworks",
		BaseURL:     "https://api.fireworks.ai/inference",
		Category:    "General",
		Description: "Large model, general purpose",
	},
	{
		ID:          4,
		Name:        "kimi-k2-instruct",
		Path:        "accounts/fireworks/models/kimi-k2-instruct",
		Provider:    "fireworks",
		BaseURL:     "https://api.fireworks.ai/inference",
		Category:    "Analysis",
		Description: "Instruction following, analytical",
	},
}

// Models returns the selectable model catalog.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(availableModels))
	copy(out, availableModels)
	return out
}

// ModelByID looks up a catalog entry.
func ModelByID(id int) (ModelInfo, bool) {
	for _, m := range availableModels {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// Model returns the currently selected provider and model path.
func (c *Client) Model() (provider, model string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider, c.model
}

// SetModel switches the client to a catalog model. In-flight requests finish
// on the old selection.
func (c *Client) SetModel(id int) (ModelInfo, error) {
	info, ok := ModelByID(id)
	if !ok {
		return ModelInfo{}, fmt.Errorf("unknown model id %d", id)
	}

	c.mu.Lock()
	c.model = info.Path
	c.provider = info.Provider
	c.baseURL = info.BaseURL
	c.mu.Unlock()

	return info, nil
}
