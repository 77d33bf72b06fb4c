package contract

import (
	"fmt"
	"strings"
)

type Scenario string

const (
	ScenarioDemo      Scenario = "demo"
	ScenarioInterview Scenario = "interview"
	ScenarioPayment   Scenario = "payment"
)

// Scenarios lists every supported scenario in menu order.
func Scenarios() []Scenario {
	return []Scenario{ScenarioDemo, ScenarioInterview, ScenarioPayment}
}

func (s Scenario) Valid() bool {
	switch s {
	case ScenarioDemo, ScenarioInterview, ScenarioPayment:
		return true
	default:
		return false
	}
}

// Title is the menu label shown to the operator.
func (s Scenario) Title() string {
	switch s {
	case ScenarioDemo:
		return "Demo Scheduling (ERP System)"
	case ScenarioInterview:
		return "Candidate Interviewing"
	case ScenarioPayment:
		return "Payment/Order Follow-up"
	default:
		return string(s)
	}
}

// ScenarioFromChoice maps a menu choice ("1".."3") to its scenario.
func ScenarioFromChoice(choice string) (Scenario, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		return ScenarioDemo, nil
	case "2":
		return ScenarioInterview, nil
	case "3":
		return ScenarioPayment, nil
	default:
		return "", fmt.Errorf("%w: choice=%q", ErrInvalidScenario, choice)
	}
}

// ParseScenario accepts either a scenario name or a menu choice.
func ParseScenario(v string) (Scenario, error) {
	s := Scenario(strings.ToLower(strings.TrimSpace(v)))
	if s.Valid() {
		return s, nil
	}
	if sc, err := ScenarioFromChoice(v); err == nil {
		return sc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScenario, v)
}

type Phase string

const (
	PhaseGreeting     Phase = "greeting"
	PhaseConversation Phase = "conversation"
	PhaseFarewell     Phase = "farewell"
)

func Phases() []Phase {
	return []Phase{PhaseGreeting, PhaseConversation, PhaseFarewell}
}

func (p Phase) Valid() bool {
	switch p {
	case PhaseGreeting, PhaseConversation, PhaseFarewell:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
