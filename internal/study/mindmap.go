package study

import (
	"context"
	"fmt"
	"strings"

	"eduorb-backend/internal/ai"
	"eduorb-backend/internal/models"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"
)

type MindMapRequest struct {
	Topic   string `json:"topic"`
	Context string `json:"context"`
}

func (r *MindMapRequest) Validate() error {
	r.Topic = strings.TrimSpace(r.Topic)
	r.Context = strings.TrimSpace(r.Context)
	if r.Topic == "" {
		return invalid("topic", "Please enter a topic for the mind map.")
	}
	return nil
}

// The schema is unrolled to the three levels the prompt asks for, since
// strict structured output needs a finite shape.
var mindMapSchema = func() ai.Schema {
	nodeProps := func(level string) map[string]jsonschema.Definition {
		return map[string]jsonschema.Definition{
			"id":    ai.String("Unique node id"),
			"text":  ai.String("Concise node text, 2-5 words"),
			"level": ai.Integer(level),
		}
	}

	leaf := ai.Object("Sub-branch", nodeProps("2 for sub-branches"))

	branchProps := nodeProps("1 for main branches")
	branchProps["children"] = ai.ArrayOf("2-4 sub-branches", leaf)
	branch := ai.Object("Main branch", branchProps)

	rootProps := nodeProps("0 for the root")
	rootProps["children"] = ai.ArrayOf("3-5 main branches", branch)

	return ai.Schema{
		Name: "mind_map",
		Definition: ai.Object("A mind map", map[string]jsonschema.Definition{
			"title":    ai.String("Title of the mind map"),
			"rootNode": ai.Object("Central topic", rootProps),
		}),
	}
}()

func mindMapPrompt(r MindMapRequest) string {
	extra := ""
	if r.Context != "" {
		extra = "\nAdditional context: " + r.Context
	}
	return fmt.Sprintf(`Create a comprehensive mind map for the topic: "%s".%s

Structure the mind map with:
- A central root node with the main topic
- 3-5 main branches (level 1) covering key aspects
- 2-4 sub-branches (level 2) for each main branch
- Keep text concise (2-5 words per node)
- Use clear, logical organization
- Include relevant subtopics and concepts

Generate unique IDs for each node and set appropriate levels (0 for root, 1 for main branches, 2 for sub-branches).`,
		r.Topic, extra)
}

func (s *Service) GenerateMindMap(ctx context.Context, req MindMapRequest) (*models.MindMap, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var mm models.MindMap
	if err := s.generateObject(ctx, "mind_map", ai.ObjectRequest{Prompt: mindMapPrompt(req), Schema: mindMapSchema}, &mm); err != nil {
		return nil, err
	}
	if strings.TrimSpace(mm.RootNode.Text) == "" {
		return nil, fmt.Errorf("%w: mind map has no root text", ErrInvalidResult)
	}
	NormalizeMindMap(&mm)
	return &mm, nil
}

// NormalizeMindMap rewrites every node's level from its depth in the tree,
// gives nodes without a unique id a fresh one, and replaces nil child lists
// with empty ones.
func NormalizeMindMap(mm *models.MindMap) {
	seen := map[string]bool{}
	normalizeNode(&mm.RootNode, 0, seen)
}

func normalizeNode(n *models.MindMapNode, depth int, seen map[string]bool) {
	n.Level = depth
	n.ID = strings.TrimSpace(n.ID)
	if n.ID == "" || seen[n.ID] {
		n.ID = uuid.NewString()
	}
	seen[n.ID] = true

	if n.Children == nil {
		n.Children = []models.MindMapNode{}
	}
	for i := range n.Children {
		normalizeNode(&n.Children[i], depth+1, seen)
	}
}
