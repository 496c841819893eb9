package generator

import (
	"fmt"
	"strings"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/ds"
)

const (
	SystemInstruction        = "You are a professional content writer. Create high-quality, engaging content based on the user's requirements."
	PreviewSystemInstruction = "You are a professional content writer. Create a brief preview of content based on the user's requirements."

	previewRequest = "Generate a brief preview (100-150 words) of what the full content would look like."
)

// BuildPrompt assembles the full generation prompt for an order.
func BuildPrompt(order *ds.Order, tpl *ds.ContentTemplate) string {
	parts := []string{tpl.PromptFor(order.Title)}

	if order.Description != "" {
		parts = append(parts, "\nAdditional context: "+order.Description)
	}

	if bullets := requirementBullets(order.GetRequirements()); len(bullets) > 0 {
		parts = append(parts, "\nSpecific requirements:")
		parts = append(parts, bullets...)
	}

	parts = append(parts, fmt.Sprintf("\nTarget word count: approximately %d words", order.WordCount))

	if instruction, ok := catalog.StructureInstruction(order.ContentType); ok {
		parts = append(parts, "\nContent format: "+instruction)
	}

	return strings.Join(parts, "\n")
}

func requirementBullets(r ds.Requirements) []string {
	var bullets []string
	if r.Tone != "" {
		bullets = append(bullets, "- Tone: "+r.Tone)
	}
	if r.TargetAudience != "" {
		bullets = append(bullets, "- Target audience: "+r.TargetAudience)
	}
	if r.Keywords != "" {
		bullets = append(bullets, "- Include these keywords: "+r.Keywords)
	}
	if r.AdditionalNotes != "" {
		bullets = append(bullets, "- Additional notes: "+r.AdditionalNotes)
	}
	if r.RevisionNotes != "" {
		bullets = append(bullets, "- Revision notes: "+r.RevisionNotes)
	}
	return bullets
}

// BuildPreviewPrompt is the abridged prompt used for previews.
func BuildPreviewPrompt(tpl *ds.ContentTemplate, title, description string) string {
	var sb strings.Builder
	sb.WriteString(tpl.PromptFor(title))
	sb.WriteString("\n")
	if description != "" {
		fmt.Fprintf(&sb, "Context: %s\n", description)
	}
	sb.WriteString(previewRequest)
	return sb.String()
}
