package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// retrieveCredentials prefers plain env vars; deployments without them hold
// the DB credentials in an AWS Secrets Manager secret instead.
func retrieveCredentials(secretID string) (string, string, error) {
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	if username != "" && password != "" {
		return username, password, nil
	}
	if secretID == "" {
		return "", "", fmt.Errorf("no DB credentials: set DB_USERNAME/DB_PASSWORD or DB_SECRET_ID")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return "", "", fmt.Errorf("load aws config: %w", err)
	}
	client := secretsmanager.NewFromConfig(awsCfg)

	result, err := client.GetSecretValue(context.TODO(), &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(secretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("get secret %s: %w", secretID, err)
	}

	var creds credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &creds); err != nil {
		return "", "", fmt.Errorf("decode secret %s: %w", secretID, err)
	}
	return creds.Username, creds.Password, nil
}
