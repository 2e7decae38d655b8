package study

import (
	"context"
	"fmt"
	"strings"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/models"

	"github.com/sashabaranov/go-openai/jsonschema"
)

type CareerRequest struct {
	CurrentRole string `json:"currentRole"`
	Experience  string `json:"experience"`
	Interests   string `json:"interests"`
	Skills      string `json:"skills"`
	Goals       string `json:"goals"`
}

func (r *CareerRequest) Validate() error {
	r.CurrentRole = strings.TrimSpace(r.CurrentRole)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Interests = strings.TrimSpace(r.Interests)
	if r.CurrentRole == "" || r.Experience == "" || r.Interests == "" {
		return invalid("currentRole", "Please fill in all required fields.")
	}
	return nil
}

var careerSchema = ai.Schema{
	Name: "career_advice",
	Definition: ai.Object("Career advice", map[string]jsonschema.Definition{
		"careerPaths": ai.ArrayOf("3-4 realistic career paths", ai.Object("", map[string]jsonschema.Definition{
			"title":        ai.String("Career path title"),
			"description":  ai.String("What the path involves"),
			"requirements": ai.StringArray("Requirements to enter the path"),
			"timeline":     ai.String("Expected time to get there"),
			"salary":       ai.String("Typical salary range"),
		})),
		"skills": ai.Object("Skills analysis", map[string]jsonschema.Definition{
			"current":     ai.StringArray("Current strengths"),
			"recommended": ai.StringArray("Skills to develop"),
			"priority":    ai.StringArray("Priority learning areas"),
		}),
		"actionPlan": ai.ArrayOf("Phased action plan", ai.Object("", map[string]jsonschema.Definition{
			"phase":    ai.String("Phase name"),
			"duration": ai.String("Phase duration"),
			"actions":  ai.StringArray("Concrete steps"),
		})),
		"resources": ai.ArrayOf("Learning resources", ai.Object("", map[string]jsonschema.Definition{
			"type":        ai.String("Course, book, community, ..."),
			"title":       ai.String("Resource title"),
			"description": ai.String("Why it helps"),
		})),
	}),
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Not specified"
	}
	return s
}

func careerPrompt(r CareerRequest) string {
	return fmt.Sprintf(`Provide comprehensive career advice for someone with the following profile:

Current Role: %s
Experience Level: %s
Interests & Passions: %s
Current Skills: %s
Career Goals: %s

Please provide:

1. 3-4 realistic career paths that align with their interests and experience
2. Skills analysis (current strengths, recommended skills to develop, priority learning areas)
3. A detailed action plan with phases and timelines
4. Relevant learning resources and recommendations

Make the advice practical, actionable, and tailored to their specific situation. Include salary ranges, timelines, and specific steps they can take.`,
		r.CurrentRole, r.Experience, r.Interests, orNotSpecified(r.Skills), orNotSpecified(r.Goals))
}

func (s *Service) AdviseCareer(ctx context.Context, req CareerRequest) (*models.CareerAdvice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var advice models.CareerAdvice
	if err := s.generateObject(ctx, "career_advice", ai.ObjectRequest{Prompt: careerPrompt(req), Schema: careerSchema}, &advice); err != nil {
		return nil, err
	}
	if len(advice.CareerPaths) == 0 {
		return nil, fmt.Errorf("%w: no career paths", ErrInvalidResult)
	}
	return &advice, nil
}
