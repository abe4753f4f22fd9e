package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplatePostPublished corresponds to templates/post_published.html
	TemplatePostPublished Template = "post_published"
)
