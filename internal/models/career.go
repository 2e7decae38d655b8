package models

type CareerAdvice struct {
	CareerPaths []CareerPath `json:"careerPaths"`
	Skills      SkillsReport `json:"skills"`
	ActionPlan  []PlanPhase  `json:"actionPlan"`
	Resources   []Resource   `json:"resources"`
}

type CareerPath struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Timeline     string   `json:"timeline"`
	Salary       string   `json:"salary"`
}

type SkillsReport struct {
	Current     []string `json:"current"`
	Recommended []string `json:"recommended"`
	Priority    []string `json:"priority"`
}

type PlanPhase struct {
	Phase    string   `json:"phase"`
	Duration string   `json:"duration"`
	Actions  []string `json:"actions"`
}

type Resource struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
