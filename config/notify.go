package config

// NotifyConfig contains completion webhook configuration.
type NotifyConfig struct {
	// Enabled toggles the webhook. Cleared automatically when no URL is set.
	Enabled bool `env:"ENABLED" envDefault:"false"`

	// WebhookURL receives a JSON document when a tracked job reaches a
	// terminal status.
	WebhookURL string `env:"WEBHOOK_URL" envDefault:""`

	// BodyJMESPath optionally reshapes the outgoing document with a JMESPath
	// expression. Empty sends the document as-is.
	BodyJMESPath string `env:"BODY_JMESPATH" envDefault:""`
}

// Sanitize applies guardrails to notify configuration values.
func (n *NotifyConfig) Sanitize() {
	if n.WebhookURL == "" {
		n.Enabled = false
	}
}
