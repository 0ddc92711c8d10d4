package config

import "github.com/spf13/viper"

// Config holds the runtime settings of the estimation service. Values come
// from the environment (a .env file is autoloaded in main); every field has a
// local-friendly default.
type Config struct {
	Port             int    `mapstructure:"PORT"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`
	EstimationsTable string `mapstructure:"ESTIMATIONS_TABLE"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("PORT", 8080)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("ESTIMATIONS_TABLE", "estimations")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
