// Package scenario holds the static caller data each scenario starts with.
package scenario

import (
	"fmt"

	contractx "github.com/tanpawarit/hinglish-coldcall-agent/agent/contract"
)

// Data is the placeholder-keyed view of a scenario's Profile and Knowledge.
type Data struct {
	Profile   map[string]string
	Knowledge map[string]string
}

type DemoProfile struct {
	Name         string
	Company      string
	Role         string
	InterestArea string
	CompanySize  string
}

func (p DemoProfile) Fields() map[string]string {
	return map[string]string{
		"name":          p.Name,
		"company":       p.Company,
		"role":          p.Role,
		"interest_area": p.InterestArea,
		"company_size":  p.CompanySize,
	}
}

type InterviewProfile struct {
	Name        string
	Experience  string
	CurrentRole string
	AppliedFor  string
}

func (p InterviewProfile) Fields() map[string]string {
	return map[string]string{
		"name":         p.Name,
		"experience":   p.Experience,
		"current_role": p.CurrentRole,
		"applied_for":  p.AppliedFor,
	}
}

type InterviewKnowledge struct {
	Position           string
	Skills             string
	ExperienceRequired string
	CompanyDomain      string
}

func (k InterviewKnowledge) Fields() map[string]string {
	return map[string]string{
		"position":            k.Position,
		"skills":              k.Skills,
		"experience_required": k.ExperienceRequired,
		"company_domain":      k.CompanyDomain,
	}
}

type PaymentProfile struct {
	Name    string
	Company string
	Role    string
}

func (p PaymentProfile) Fields() map[string]string {
	return map[string]string{
		"name":    p.Name,
		"company": p.Company,
		"role":    p.Role,
	}
}

type PaymentKnowledge struct {
	InvoiceNumber  string
	DueAmount      string
	DaysLate       string
	PaymentHistory string
}

func (k PaymentKnowledge) Fields() map[string]string {
	return map[string]string{
		"invoice_number":  k.InvoiceNumber,
		"due_amount":      k.DueAmount,
		"days_late":       k.DaysLate,
		"payment_history": k.PaymentHistory,
	}
}

var (
	demoProfile = DemoProfile{
		Name:         "Ansh Aggarwal",
		Company:      "Tech Solutions Ltd",
		Role:         "IT Manager",
		InterestArea: "Inventory Management and HR modules",
		CompanySize:  "150 employees",
	}

	interviewProfile = InterviewProfile{
		Name:        "Ansh Aggarwal",
		Experience:  "3 years",
		CurrentRole: "Junior Developer",
		AppliedFor:  "Software Engineer",
	}
	interviewKnowledge = InterviewKnowledge{
		Position:           "Software Engineer",
		Skills:             "Python, React, SQL, Cloud platforms",
		ExperienceRequired: "2-5 years",
		CompanyDomain:      "FinTech",
	}

	paymentProfile = PaymentProfile{
		Name:    "Customer",
		Company: "Global Enterprises",
		Role:    "Procurement Manager",
	}
	paymentKnowledge = PaymentKnowledge{
		InvoiceNumber:  "INV-2024-1075",
		DueAmount:      "₹4,85,000",
		DaysLate:       "45",
		PaymentHistory: "Generally good, but occasional delays",
	}
)

// Load returns fresh copies of the scenario's Profile and Knowledge.
func Load(s contractx.Scenario) (Data, error) {
	switch s {
	case contractx.ScenarioDemo:
		return Data{Profile: demoProfile.Fields(), Knowledge: map[string]string{}}, nil
	case contractx.ScenarioInterview:
		return Data{Profile: interviewProfile.Fields(), Knowledge: interviewKnowledge.Fields()}, nil
	case contractx.ScenarioPayment:
		return Data{Profile: paymentProfile.Fields(), Knowledge: paymentKnowledge.Fields()}, nil
	default:
		return Data{}, fmt.Errorf("%w: %q", contractx.ErrInvalidScenario, s)
	}
}
