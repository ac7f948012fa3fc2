package dynamodb

import (
	"context"
	"errors"
	"testing"

	"todos-backend/domain/todo"
	apperrors "todos-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAPI is a mock implementation of API for testing.
type mockAPI struct {
	putItemFunc    func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	queryFunc      func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	updateItemFunc func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	deleteItemFunc func(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

func (m *mockAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params, optFns...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if m.updateItemFunc != nil {
		return m.updateItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if m.deleteItemFunc != nil {
		return m.deleteItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func newTestStore(api *mockAPI) *TodoStore {
	return NewTodoStore(api, "todos-test", "TodoIdIndex", zap.NewNop())
}

func testItem() todo.Item {
	return todo.Item{
		TodoID:        "todo-1",
		UserID:        "user-1",
		CreatedAt:     "2025-01-01T00:00:00Z",
		Name:          "Buy milk",
		DueDate:       "2025-02-01",
		Done:          false,
		AttachmentURL: "",
	}
}

func TestTodoStore_Insert(t *testing.T) {
	var captured *dynamodb.PutItemInput
	api := &mockAPI{
		putItemFunc: func(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			captured = params
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	store := newTestStore(api)
	item := testItem()

	got, err := store.Insert(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item, got)

	require.NotNil(t, captured)
	assert.Equal(t, "todos-test", *captured.TableName)

	userID, ok := captured.Item["userId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID.Value)

	todoID, ok := captured.Item["todoId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "todo-1", todoID.Value)

	done, ok := captured.Item["done"].(*types.AttributeValueMemberBOOL)
	require.True(t, ok)
	assert.False(t, done.Value)
}

func TestTodoStore_Insert_Error(t *testing.T) {
	api := &mockAPI{
		putItemFunc: func(_ context.Context, _ *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	store := newTestStore(api)

	_, err := store.Insert(context.Background(), testItem())
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeDatabase, appErr.Type)
}

func TestTodoStore_ListByUser(t *testing.T) {
	var captured *dynamodb.QueryInput
	api := &mockAPI{
		queryFunc: func(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			captured = params
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{
						"todoId":        &types.AttributeValueMemberS{Value: "todo-1"},
						"userId":        &types.AttributeValueMemberS{Value: "user-1"},
						"createdAt":     &types.AttributeValueMemberS{Value: "2025-01-01T00:00:00Z"},
						"name":          &types.AttributeValueMemberS{Value: "Buy milk"},
						"dueDate":       &types.AttributeValueMemberS{Value: ""},
						"done":          &types.AttributeValueMemberBOOL{Value: false},
						"attachmentUrl": &types.AttributeValueMemberS{Value: ""},
					},
				},
			}, nil
		},
	}

	store := newTestStore(api)

	items, err := store.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "todo-1", items[0].TodoID)
	assert.Equal(t, "Buy milk", items[0].Name)

	require.NotNil(t, captured)
	assert.Nil(t, captured.IndexName)
	assert.Equal(t, "userId = :userId", *captured.KeyConditionExpression)

	userID, ok := captured.ExpressionAttributeValues[":userId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID.Value)
}

func TestTodoStore_ListByUser_Empty(t *testing.T) {
	store := newTestStore(&mockAPI{})

	items, err := store.ListByUser(context.Background(), "user-without-todos")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestTodoStore_GetByID_UsesIndex(t *testing.T) {
	var captured *dynamodb.QueryInput
	api := &mockAPI{
		queryFunc: func(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			captured = params
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{
						"todoId": &types.AttributeValueMemberS{Value: "todo-1"},
						"userId": &types.AttributeValueMemberS{Value: "user-1"},
						"name":   &types.AttributeValueMemberS{Value: "Buy milk"},
						"done":   &types.AttributeValueMemberBOOL{Value: true},
					},
				},
			}, nil
		},
	}

	store := newTestStore(api)

	item, err := store.GetByID(context.Background(), "todo-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", item.UserID)
	assert.True(t, item.Done)

	require.NotNil(t, captured)
	require.NotNil(t, captured.IndexName)
	assert.Equal(t, "TodoIdIndex", *captured.IndexName)
	assert.Equal(t, "todoId = :todoId", *captured.KeyConditionExpression)
	require.NotNil(t, captured.Limit)
	assert.Equal(t, int32(1), *captured.Limit)
}

func TestTodoStore_GetByID_NotFound(t *testing.T) {
	store := newTestStore(&mockAPI{})

	item, err := store.GetByID(context.Background(), "missing")
	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTodoStore_Update_SetsAllMutableFields(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	api := &mockAPI{
		updateItemFunc: func(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = params
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}

	store := newTestStore(api)

	err := store.Update(context.Background(), "user-1", "todo-1", todo.Update{
		Name:    "Buy oat milk",
		DueDate: "2025-03-01",
		Done:    true,
	})
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "todos-test", *captured.TableName)

	userID, ok := captured.Key["userId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID.Value)

	todoID, ok := captured.Key["todoId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "todo-1", todoID.Value)

	// All three mutable fields appear in the expression; the immutable key
	// attributes never do.
	names := make([]string, 0, len(captured.ExpressionAttributeNames))
	for _, name := range captured.ExpressionAttributeNames {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"name", "dueDate", "done"}, names)
	assert.Nil(t, captured.ConditionExpression)
}

func TestTodoStore_SetAttachmentURL(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	api := &mockAPI{
		updateItemFunc: func(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = params
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}

	store := newTestStore(api)

	err := store.SetAttachmentURL(context.Background(), "user-1", "todo-1", "https://bucket.s3.amazonaws.com/todo-1")
	require.NoError(t, err)

	require.NotNil(t, captured)
	names := make([]string, 0, len(captured.ExpressionAttributeNames))
	for _, name := range captured.ExpressionAttributeNames {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"attachmentUrl"}, names)
}

func TestTodoStore_Delete(t *testing.T) {
	var captured *dynamodb.DeleteItemInput
	api := &mockAPI{
		deleteItemFunc: func(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
			captured = params
			return &dynamodb.DeleteItemOutput{}, nil
		},
	}

	store := newTestStore(api)

	// DynamoDB's DeleteItem does not distinguish a missing key; neither does
	// this layer.
	err := store.Delete(context.Background(), "user-1", "never-existed")
	require.NoError(t, err)

	require.NotNil(t, captured)
	userID, ok := captured.Key["userId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", userID.Value)
}
