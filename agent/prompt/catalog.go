package prompt

import (
	"embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

//go:embed template/*.txt
var templateFS embed.FS

type key struct {
	scenario contractx.Scenario
	phase    contractx.Phase
}

// Catalog maps every (scenario, phase) pair to its template text.
type Catalog struct {
	templates map[key]string
}

// TemplateSet holds the three phase templates of a single scenario.
type TemplateSet struct {
	Scenario     contractx.Scenario
	Greeting     string
	Conversation string
	Farewell     string
}

// For returns the template of phase p.
func (t TemplateSet) For(p contractx.Phase) (string, error) {
	var tpl string
	switch p {
	case contractx.PhaseGreeting:
		tpl = t.Greeting
	case contractx.PhaseConversation:
		tpl = t.Conversation
	case contractx.PhaseFarewell:
		tpl = t.Farewell
	}
	if tpl == "" {
		return "", fmt.Errorf("%w: scenario=%s phase=%s", contractx.ErrUnknownTemplate, t.Scenario, p)
	}
	return tpl, nil
}

// LoadCatalog reads the embedded templates. Every scenario must have every
// phase, and every template may only use known placeholders.
func LoadCatalog() (*Catalog, error) {
	return loadCatalog(func(name string) (string, error) {
		raw, err := templateFS.ReadFile("template/" + name)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	})
}

func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func loadCatalog(read func(name string) (string, error)) (*Catalog, error) {
	c := &Catalog{templates: make(map[key]string, 9)}
	for _, s := range contractx.Scenarios() {
		for _, p := range contractx.Phases() {
			raw, err := read(fmt.Sprintf("%s_%s.txt", s, p))
			if err != nil {
				return nil, fmt.Errorf("%w: scenario=%s phase=%s: %v", contractx.ErrUnknownTemplate, s, p, err)
			}
			tpl := strings.TrimSpace(raw)
			if tpl == "" {
				return nil, fmt.Errorf("%w: scenario=%s phase=%s is empty", contractx.ErrUnknownTemplate, s, p)
			}
			if err := Validate(tpl); err != nil {
				return nil, fmt.Errorf("scenario=%s phase=%s: %w", s, p, err)
			}
			c.templates[key{s, p}] = tpl
		}
	}
	return c, nil
}

// Lookup returns the literal template for the pair.
func (c *Catalog) Lookup(s contractx.Scenario, p contractx.Phase) (string, error) {
	tpl, ok := c.templates[key{s, p}]
	if !ok {
		return "", fmt.Errorf("%w: scenario=%q phase=%q", contractx.ErrUnknownTemplate, s, p)
	}
	return tpl, nil
}

func (c *Catalog) ForScenario(s contractx.Scenario) (TemplateSet, error) {
	set := TemplateSet{Scenario: s}
	var err error
	if set.Greeting, err = c.Lookup(s, contractx.PhaseGreeting); err != nil {
		return TemplateSet{}, err
	}
	if set.Conversation, err = c.Lookup(s, contractx.PhaseConversation); err != nil {
		return TemplateSet{}, err
	}
	if set.Farewell, err = c.Lookup(s, contractx.PhaseFarewell); err != nil {
		return TemplateSet{}, err
	}
	return set, nil
}
