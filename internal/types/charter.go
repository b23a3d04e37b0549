// Package types provides type definitions for structured data used throughout the spec-customizer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Charter is the structured project-intent record used as the data source for synthesis.
// Scalar fields are absent when empty or whitespace-only; list fields are absent
// when they hold no non-blank item.
type Charter struct {
	ProjectName  string `json:"projectName,omitempty" yaml:"projectName,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Location     string `json:"location,omitempty" yaml:"location,omitempty"`
	Owner        string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Architect    string `json:"architect,omitempty" yaml:"architect,omitempty"`
	Contractor   string `json:"contractor,omitempty" yaml:"contractor,omitempty"`
	ContractType string `json:"contractType,omitempty" yaml:"contractType,omitempty"`
	Schedule     string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Budget       string `json:"budget,omitempty" yaml:"budget,omitempty"`

	Objectives           []string `json:"objectives,omitempty" yaml:"objectives,omitempty"`
	Stakeholders         []string `json:"stakeholders,omitempty" yaml:"stakeholders,omitempty"`
	Constraints          []string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	SustainabilityGoals  []string `json:"sustainabilityGoals,omitempty" yaml:"sustainabilityGoals,omitempty"`
	QualityRequirements  []string `json:"qualityRequirements,omitempty" yaml:"qualityRequirements,omitempty"`
	SubmittalProcedures  []string `json:"submittalProcedures,omitempty" yaml:"submittalProcedures,omitempty"`
	WasteManagementGoals []string `json:"wasteManagementGoals,omitempty" yaml:"wasteManagementGoals,omitempty"`
	SafetyRequirements   []string `json:"safetyRequirements,omitempty" yaml:"safetyRequirements,omitempty"`
}

// Charter field names (JSON keys)
const (
	FieldProjectName          = "projectName"
	FieldDescription          = "description"
	FieldLocation             = "location"
	FieldOwner                = "owner"
	FieldArchitect            = "architect"
	FieldContractor           = "contractor"
	FieldContractType         = "contractType"
	FieldSchedule             = "schedule"
	FieldBudget               = "budget"
	FieldObjectives           = "objectives"
	FieldStakeholders         = "stakeholders"
	FieldConstraints          = "constraints"
	FieldSustainabilityGoals  = "sustainabilityGoals"
	FieldQualityRequirements  = "qualityRequirements"
	FieldSubmittalProcedures  = "submittalProcedures"
	FieldWasteManagementGoals = "wasteManagementGoals"
	FieldSafetyRequirements   = "safetyRequirements"
)

// CharterField is one enumerated charter attribute with its normalized values.
type CharterField struct {
	Name   string   // JSON key
	Label  string   // human-readable name used in tips
	List   bool     // true for list-valued fields
	Values []string // non-blank values in original order; empty when absent
}

// Present reports whether the field holds a non-empty value.
func (f CharterField) Present() bool {
	return len(f.Values) > 0
}

// Joined returns the values joined with ", " in original order.
func (f CharterField) Joined() string {
	return strings.Join(f.Values, ", ")
}

// Fields enumerates every charter field in declaration order.
// A nil charter yields every field as absent.
func (c *Charter) Fields() []CharterField {
	if c == nil {
		c = &Charter{}
	}
	return []CharterField{
		scalarField(FieldProjectName, "Project Name", c.ProjectName),
		scalarField(FieldDescription, "Project Description", c.Description),
		scalarField(FieldLocation, "Project Location", c.Location),
		scalarField(FieldOwner, "Owner", c.Owner),
		scalarField(FieldArchitect, "Architect", c.Architect),
		scalarField(FieldContractor, "Contractor", c.Contractor),
		scalarField(FieldContractType, "Contract Type", c.ContractType),
		scalarField(FieldSchedule, "Project Schedule", c.Schedule),
		scalarField(FieldBudget, "Budget", c.Budget),
		listField(FieldObjectives, "Project Objectives", c.Objectives),
		listField(FieldStakeholders, "Stakeholders", c.Stakeholders),
		listField(FieldConstraints, "Project Constraints", c.Constraints),
		listField(FieldSustainabilityGoals, "Sustainability Goals", c.SustainabilityGoals),
		listField(FieldQualityRequirements, "Quality Requirements", c.QualityRequirements),
		listField(FieldSubmittalProcedures, "Submittal Procedures", c.SubmittalProcedures),
		listField(FieldWasteManagementGoals, "Waste Management Goals", c.WasteManagementGoals),
		listField(FieldSafetyRequirements, "Safety Requirements", c.SafetyRequirements),
	}
}

// Field looks up a single field by JSON key.
func (c *Charter) Field(name string) (CharterField, bool) {
	for _, f := range c.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return CharterField{}, false
}

func scalarField(name, label, value string) CharterField {
	f := CharterField{Name: name, Label: label}
	if v := strings.TrimSpace(value); v != "" {
		f.Values = []string{v}
	}
	return f
}

func listField(name, label string, values []string) CharterField {
	f := CharterField{Name: name, Label: label, List: true}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			f.Values = append(f.Values, v)
		}
	}
	return f
}
