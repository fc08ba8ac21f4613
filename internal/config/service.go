package config

import "time"

const defaultProcessorTimeout = 30 * time.Second

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	ClientURL   string `yaml:"client_url"`

	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`

	// ProcessorTimeout bounds every outbound call to the payment provider.
	ProcessorTimeout time.Duration `yaml:"processor_timeout"`
}
