package prompt

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

const (
	HistoryPlaceholder   = "conversation_history"
	UserInputPlaceholder = "user_input"
)

// ContextPlaceholders are filled from the Profile and Knowledge buckets.
var ContextPlaceholders = []string{
	"name",
	"company",
	"role",
	"interest_area",
	"company_size",
	"experience",
	"current_role",
	"applied_for",
	"position",
	"skills",
	"experience_required",
	"company_domain",
	"invoice_number",
	"due_amount",
	"days_late",
	"payment_history",
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Placeholders returns the full set of names a template may reference.
func Placeholders() []string {
	out := slices.Clone(ContextPlaceholders)
	return append(out, HistoryPlaceholder, UserInputPlaceholder)
}

func isKnown(name string) bool {
	return name == HistoryPlaceholder || name == UserInputPlaceholder || slices.Contains(ContextPlaceholders, name)
}

// Referenced lists the distinct placeholder names in tpl, sorted.
func Referenced(tpl string) []string {
	unescaped := strings.NewReplacer("{{", "", "}}", "").Replace(tpl)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(unescaped, -1) {
		name := strings.TrimSpace(m[1])
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Validate rejects templates that reference names outside the placeholder set.
func Validate(tpl string) error {
	for _, name := range Referenced(tpl) {
		if !isKnown(name) {
			return fmt.Errorf("%w: {%s}", contractx.ErrSchemaDrift, name)
		}
	}
	return nil
}

type Input struct {
	Profile   map[string]string
	Knowledge map[string]string
	History   string
	UserInput string
}

// Variables resolves every placeholder: Profile first, then Knowledge, else "".
func Variables(in Input) map[string]any {
	vars := make(map[string]any, len(ContextPlaceholders)+2)
	for _, name := range ContextPlaceholders {
		v, ok := in.Profile[name]
		if !ok {
			v = in.Knowledge[name]
		}
		vars[name] = v
	}
	vars[HistoryPlaceholder] = in.History
	vars[UserInputPlaceholder] = in.UserInput
	return vars
}

// Render fills tpl. Missing keys become empty strings; unknown placeholders fail.
func Render(ctx context.Context, tpl string, in Input) (string, error) {
	if err := Validate(tpl); err != nil {
		return "", err
	}

	msgs, err := einoprompt.FromMessages(schema.FString, schema.UserMessage(tpl)).Format(ctx, Variables(in))
	if err != nil {
		return "", fmt.Errorf("%w: format template: %v", contractx.ErrValidation, err)
	}
	if len(msgs) != 1 || msgs[0] == nil {
		return "", fmt.Errorf("%w: template produced %d messages", contractx.ErrValidation, len(msgs))
	}
	return msgs[0].Content, nil
}
