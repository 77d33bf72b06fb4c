package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
	openrouterx "github.com/tanpawarit/hinglish-coldcall-agent/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"google/gemini-1.5-pro"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"400"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
	SystemPrompt       string        `envconfig:"SYSTEM_PROMPT" split_words:"true"`

	DemoModel            string  `envconfig:"DEMO_MODEL" split_words:"true"`
	InterviewModel       string  `envconfig:"INTERVIEW_MODEL" split_words:"true"`
	PaymentModel         string  `envconfig:"PAYMENT_MODEL" split_words:"true"`
	DemoTemperature      float32 `envconfig:"DEMO_TEMPERATURE" split_words:"true" default:"-1"`
	InterviewTemperature float32 `envconfig:"INTERVIEW_TEMPERATURE" split_words:"true" default:"-1"`
	PaymentTemperature   float32 `envconfig:"PAYMENT_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	if c.MaxCompletionToken <= 0 {
		return fmt.Errorf("%w: max completion token must be > 0", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model settings for one scenario; per-scenario
// overrides win over the defaults.
func (c Config) OpenRouterFor(scenario contractx.Scenario) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	var overrideModel string
	overrideTemp := float32(-1)
	switch scenario {
	case contractx.ScenarioDemo:
		overrideModel, overrideTemp = c.DemoModel, c.DemoTemperature
	case contractx.ScenarioInterview:
		overrideModel, overrideTemp = c.InterviewModel, c.InterviewTemperature
	case contractx.ScenarioPayment:
		overrideModel, overrideTemp = c.PaymentModel, c.PaymentTemperature
	}
	if v := strings.TrimSpace(overrideModel); v != "" {
		modelName = v
	}
	if overrideTemp >= 0 {
		temp = overrideTemp
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
