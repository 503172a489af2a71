package config

import (
	"log"
	"os"

	"github.com/ghodss/yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

type RelayConfig struct {
	Workdir      string        `json:"workdir" validate:"required"`
	DatabasePath string        `json:"database_path"`
	WebhookURL   string        `json:"webhook_url"`
	Storage      StorageConfig `json:"storage"`
	Audit        AuditConfig   `json:"audit"`
	Mail         MailConfig    `json:"mail"`
	IsTest       bool          `json:"is_test"`
}

type StorageConfig struct {
	Bucket         string `json:"bucket" validate:"required"` // assignment-submissions
	Region         string `json:"region" validate:"required"` // us-east-1
	Endpoint       string `json:"endpoint"`                   // optional, for S3-compatible stores
	ForcePathStyle bool   `json:"force_path_style"`
}

type AuditConfig struct {
	TableName string `json:"table_name" validate:"required"` // submission-audit
	Region    string `json:"region" validate:"required"`
}

type MailConfig struct {
	Host     string `json:"host" validate:"required"` // smtp.mailgun.org
	Port     int    `json:"port" validate:"required"` // 587
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	From     string `json:"from" validate:"required,email"`
}

// LoadConfig load relay config from file
func LoadConfig() (config RelayConfig, err error) {
	configPaths := []string{
		"/etc/submission-relay/config.yml",
		"../../utils/config.yml",
		"./utils/config.yml",
	}
	configPath := os.Getenv("SUBRELAY_CONFIG_PATH")
	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		// load from predefined configPaths when no SUBRELAY_CONFIG_PATH set
		for _, path := range configPaths {
			yamlFile, err = os.ReadFile(path)
			if err == nil {
				log.Println("load config from : ", path)
				break
			}
		}
		if err != nil {
			return
		}
	}

	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		return
	}

	// Secrets prefer the environment over the config file
	if smtpPassword := os.Getenv("SUBRELAY_SMTP_PASSWORD"); smtpPassword != "" {
		config.Mail.Password = smtpPassword
	}

	if config.DatabasePath == "" {
		config.DatabasePath = config.Workdir + "/relay.db"
	}

	validate := validator.New()
	err = validate.Struct(config)

	return
}
