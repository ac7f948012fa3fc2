package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"todos-backend/application/ports"
	"todos-backend/domain/todo"
	apperrors "todos-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// API is the subset of the DynamoDB client used by the store. Narrowed so
// tests can inject a mock.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// TodoStore implements the TodoStore port against a DynamoDB table keyed by
// (userId, todoId), with a GSI keyed by todoId alone for cross-owner lookups.
// Every method issues exactly one DynamoDB call: no retries, no conditional
// writes, no transactions.
type TodoStore struct {
	client    API
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewTodoStore creates a new DynamoDB-backed todo store
func NewTodoStore(client API, tableName, indexName string, logger *zap.Logger) *TodoStore {
	return &TodoStore{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

var _ ports.TodoStore = (*TodoStore)(nil)

// Insert writes the full item. PutItem overwrite semantics apply.
func (s *TodoStore) Insert(ctx context.Context, item todo.Item) (todo.Item, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return todo.Item{}, apperrors.NewInternalError("failed to marshal todo", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		s.logError("PutItem failed", err, item.UserID, item.TodoID)
		return todo.Item{}, apperrors.NewDatabaseError("failed to insert todo", err)
	}

	s.logger.Info("Inserted todo",
		zap.String("todoId", item.TodoID),
		zap.String("userId", item.UserID),
	)

	return item, nil
}

// ListByUser queries the user's whole partition. No pagination.
func (s *TodoStore) ListByUser(ctx context.Context, userID string) ([]todo.Item, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		s.logError("Query by user failed", err, userID, "")
		return nil, apperrors.NewDatabaseError("failed to list todos", err)
	}

	items := make([]todo.Item, 0, len(result.Items))
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal todos", err)
	}

	return items, nil
}

// GetByID queries the todoId index. Minted ids are globally unique, so the
// first item wins if the index ever returns more than one.
func (s *TodoStore) GetByID(ctx context.Context, todoID string) (*todo.Item, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(s.indexName),
		KeyConditionExpression: aws.String("todoId = :todoId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":todoId": &types.AttributeValueMemberS{Value: todoID},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		s.logError("Query by todoId failed", err, "", todoID)
		return nil, apperrors.NewDatabaseError("failed to look up todo", err)
	}

	if len(result.Items) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("todo %s", todoID))
	}

	var item todo.Item
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal todo", err)
	}

	return &item, nil
}

// Update sets name, dueDate and done on the item keyed by (userId, todoId).
// No condition expression: an update with no matching key writes nothing and
// returns no error.
func (s *TodoStore) Update(ctx context.Context, userID, todoID string, update todo.Update) error {
	upd := expression.
		Set(expression.Name("name"), expression.Value(update.Name)).
		Set(expression.Name("dueDate"), expression.Value(update.DueDate)).
		Set(expression.Name("done"), expression.Value(update.Done))

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build update expression", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(userID, todoID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		s.logError("UpdateItem failed", err, userID, todoID)
		return apperrors.NewDatabaseError("failed to update todo", err)
	}

	return nil
}

// SetAttachmentURL records the public-read attachment location on the item.
func (s *TodoStore) SetAttachmentURL(ctx context.Context, userID, todoID, attachmentURL string) error {
	upd := expression.Set(expression.Name("attachmentUrl"), expression.Value(attachmentURL))

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return apperrors.NewInternalError("failed to build update expression", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       itemKey(userID, todoID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	if _, err := s.client.UpdateItem(ctx, input); err != nil {
		s.logError("UpdateItem for attachment URL failed", err, userID, todoID)
		return apperrors.NewDatabaseError("failed to set attachment URL", err)
	}

	return nil
}

// Delete removes the item keyed by (userId, todoId). Deleting a missing key
// is a no-op for DynamoDB and for this layer.
func (s *TodoStore) Delete(ctx context.Context, userID, todoID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       itemKey(userID, todoID),
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		s.logError("DeleteItem failed", err, userID, todoID)
		return apperrors.NewDatabaseError("failed to delete todo", err)
	}

	s.logger.Info("Deleted todo",
		zap.String("todoId", todoID),
		zap.String("userId", userID),
	)

	return nil
}

// itemKey builds the composite primary key for an item
func itemKey(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}

// logError logs a store fault, including the AWS error code when present
func (s *TodoStore) logError(msg string, err error, userID, todoID string) {
	fields := []zap.Field{zap.Error(err)}
	if userID != "" {
		fields = append(fields, zap.String("userId", userID))
	}
	if todoID != "" {
		fields = append(fields, zap.String("todoId", todoID))
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("awsErrorCode", apiErr.ErrorCode()))
	}

	s.logger.Error(msg, fields...)
}
