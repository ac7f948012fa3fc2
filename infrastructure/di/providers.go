package di

import (
	"context"
	"fmt"

	"todos-backend/application/ports"
	"todos-backend/application/services"
	"todos-backend/infrastructure/config"
	dynamostore "todos-backend/infrastructure/persistence/dynamodb"
	s3storage "todos-backend/infrastructure/storage/s3"
	"todos-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        ports.TodoStore
	Uploads      ports.UploadURLProvider
	Service      *services.TodoService
	JWTValidator *auth.JWTValidator
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideS3PresignClient creates an S3 presign client
func ProvideS3PresignClient(awsCfg aws.Config) *awss3.PresignClient {
	return awss3.NewPresignClient(awss3.NewFromConfig(awsCfg))
}

// ProvideTodoStore creates the DynamoDB-backed todo store
func ProvideTodoStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TodoStore {
	return dynamostore.NewTodoStore(client, cfg.TodosTable, cfg.TodoIDIndex, logger)
}

// ProvideUploadURLProvider creates the attachment upload URL provider
func ProvideUploadURLProvider(presigner *awss3.PresignClient, cfg *config.Config, logger *zap.Logger) ports.UploadURLProvider {
	return s3storage.NewAttachmentProvider(presigner, cfg.AttachmentBucket, cfg.UploadURLExpiry, logger)
}

// ProvideTodoService creates the todo lifecycle service
func ProvideTodoService(store ports.TodoStore, uploads ports.UploadURLProvider, cfg *config.Config, logger *zap.Logger) *services.TodoService {
	return services.NewTodoService(store, uploads, cfg.AttachmentBucket, logger)
}

// ProvideJWTValidator creates the bearer-token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		secret = "development-secret-change-in-production"
	}

	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}
