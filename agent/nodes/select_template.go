package phasenode

import (
	"fmt"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	promptx "github.com/tanpawarit/hinglish-coldcall-agent/agent/prompt"
)

func SelectTemplate(in *GraphState, templates promptx.TemplateSet) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph state is incomplete", contractx.ErrValidation)
	}
	if templates.Scenario != in.Session.Scenario {
		return nil, fmt.Errorf("%w: templates for %s cannot serve a %s call",
			contractx.ErrValidation, templates.Scenario, in.Session.Scenario)
	}

	tpl, err := templates.For(in.Phase)
	if err != nil {
		return nil, err
	}
	in.Template = tpl
	return in, nil
}
