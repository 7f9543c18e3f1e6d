// Command gateway runs the cashbook CRUD gateway as an AWS Lambda function
// behind a Function URL.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/LLeom997/cashbookbackend/gateway"
	"github.com/LLeom997/cashbookbackend/resolve"
	"github.com/LLeom997/cashbookbackend/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	cfg := store.ConfigFromEnv()
	client := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
	registry := store.DefaultRegistry(cfg)
	resolver := resolve.New(client, registry, logger)
	handler := gateway.NewHandler(client, registry, resolver, logger)

	lambda.Start(handler.Handle)
}
