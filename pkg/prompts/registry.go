package prompts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/richard-senior/hoops/internal/logger"
	"github.com/richard-senior/hoops/pkg/protocol"
)

var placeholder = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// promptFile is the on disk form of a prompt
type promptFile struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Content     string                    `json:"content"`
	Arguments   []protocol.PromptArgument `json:"arguments"`
}

// PromptRegistry holds the prompts offered over prompts/list and prompts/get
type PromptRegistry struct {
	mu      sync.RWMutex
	prompts map[string]protocol.Prompt
}

// NewPromptRegistry creates a registry holding the built in prompts
func NewPromptRegistry() *PromptRegistry {
	pr := &PromptRegistry{prompts: make(map[string]protocol.Prompt)}
	for _, p := range builtinPrompts() {
		pr.Register(p)
	}
	return pr
}

// Register adds or replaces a prompt
func (pr *PromptRegistry) Register(p protocol.Prompt) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.prompts[p.Name] = p
	logger.Debug("Registered prompt", p.Name)
}

// LoadDir registers every *.json prompt file under dir. A prompt with the same
// name as a built in one replaces it.
func (pr *PromptRegistry) LoadDir(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read prompt file: %w", err)
		}
		var f promptFile
		if err := json.Unmarshal(data, &f); err != nil {
			logger.Warn("Failed to parse prompt file", path, err)
			return nil
		}
		if f.Name == "" {
			f.Name = strings.TrimSuffix(d.Name(), ".json")
		}
		pr.Register(protocol.Prompt{Name: f.Name, Description: f.Description, Arguments: f.Arguments, Content: f.Content})
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("failed to load prompts: %w", err)
	}
	return count, nil
}

// ListPrompts returns the prompts ordered by name
func (pr *PromptRegistry) ListPrompts() []protocol.Prompt {
	pr.mu.RLock()
	defer pr.mu.RUnlock()

	out := make([]protocol.Prompt, 0, len(pr.prompts))
	for _, p := range pr.prompts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetPrompt retrieves a prompt by name
func (pr *PromptRegistry) GetPrompt(name string) (*protocol.Prompt, error) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	p, ok := pr.prompts[name]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", name)
	}
	return &p, nil
}

// Render fills the {{variables}} of a prompt. Required arguments must be
// given, optional ones that are missing become empty.
func (pr *PromptRegistry) Render(name string, args map[string]string) (string, error) {
	p, err := pr.GetPrompt(name)
	if err != nil {
		return "", err
	}
	for _, a := range p.Arguments {
		if a.Required && strings.TrimSpace(args[a.Name]) == "" {
			return "", fmt.Errorf("prompt %s: missing required argument %s", name, a.Name)
		}
	}
	return placeholder.ReplaceAllStringFunc(p.Content, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		return args[key]
	}), nil
}
