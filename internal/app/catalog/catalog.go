// Package catalog holds the built-in content types offered to customers.
package catalog

import "contentgenius/internal/app/ds"

const (
	BlogPost      = "blog_post"
	Article       = "article"
	SocialMedia   = "social_media"
	MarketingCopy = "marketing_copy"
	VideoScript   = "video_script"
)

// DefaultTemplates returns a fresh copy of the seed catalog on every call.
func DefaultTemplates() []ds.ContentTemplate {
	return []ds.ContentTemplate{
		{
			Name:             "Blog Post",
			ContentType:      BlogPost,
			TemplatePrompt:   "Write a comprehensive blog post about {topic}. Include an engaging introduction, well-structured body paragraphs with subheadings, and a compelling conclusion. Make it informative and engaging for the target audience.",
			DefaultWordCount: 800,
			BasePrice:        25.0,
			IsActive:         true,
		},
		{
			Name:             "Article",
			ContentType:      Article,
			TemplatePrompt:   "Create a detailed article about {topic}. Ensure it is well-researched, factual, and provides valuable insights. Include proper structure with introduction, main content sections, and conclusion.",
			DefaultWordCount: 1000,
			BasePrice:        35.0,
			IsActive:         true,
		},
		{
			Name:             "Social Media Post",
			ContentType:      SocialMedia,
			TemplatePrompt:   "Create engaging social media content about {topic}. Make it catchy, shareable, and appropriate for the specified platform. Include relevant hashtags and call-to-action.",
			DefaultWordCount: 150,
			BasePrice:        10.0,
			IsActive:         true,
		},
		{
			Name:             "Marketing Copy",
			ContentType:      MarketingCopy,
			TemplatePrompt:   "Write persuasive marketing copy for {topic}. Focus on benefits, create urgency, and include a strong call-to-action. Make it compelling and conversion-focused.",
			DefaultWordCount: 300,
			BasePrice:        20.0,
			IsActive:         true,
		},
		{
			Name:             "Video Script",
			ContentType:      VideoScript,
			TemplatePrompt:   "Create a video script for {topic}. Include scene descriptions, dialogue, and timing notes. Make it engaging and suitable for the specified video length and style.",
			DefaultWordCount: 500,
			BasePrice:        30.0,
			IsActive:         true,
		},
	}
}

var structureInstructions = map[string]string{
	BlogPost:      "Structure the content with a compelling headline, introduction, main body with subheadings, and conclusion.",
	Article:       "Write in a professional, informative style with proper citations and references where appropriate.",
	SocialMedia:   "Keep it engaging, shareable, and include relevant hashtags. Make it platform-appropriate.",
	MarketingCopy: "Focus on benefits, create urgency, and include a strong call-to-action.",
	VideoScript:   "Include scene descriptions, dialogue, and timing notes. Make it engaging for video format.",
}

// StructureInstruction returns the formatting guidance for a content type.
func StructureInstruction(contentType string) (string, bool) {
	s, ok := structureInstructions[contentType]
	return s, ok
}
