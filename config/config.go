package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort uint16 `envconfig:"PATIENT_RECORD_HTTP_PORT" default:"8080" required:"true"`

	// Identity attached to memos and payments created through the API.
	ProviderId        string `envconfig:"PATIENT_RECORD_PROVIDER_ID" default:"usr_current_provider"`
	ProviderFirstName string `envconfig:"PATIENT_RECORD_PROVIDER_FIRST_NAME" default:"Current"`
	ProviderLastName  string `envconfig:"PATIENT_RECORD_PROVIDER_LAST_NAME" default:"Provider"`
	ProviderEmail     string `envconfig:"PATIENT_RECORD_PROVIDER_EMAIL" default:"provider@decodahealth.com"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
