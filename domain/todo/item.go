package todo

import "fmt"

// Item is a single to-do entry owned by one user.
//
// (userId, todoId) is the table's primary key; todoId alone is globally unique
// and indexed separately for the attachment workflow. The record is persisted
// exactly in this shape, so adding a field is a breaking change for existing
// items unless it is optional on read.
type Item struct {
	TodoID        string `json:"todoId" dynamodbav:"todoId"`
	UserID        string `json:"userId" dynamodbav:"userId"`
	CreatedAt     string `json:"createdAt" dynamodbav:"createdAt"`
	Name          string `json:"name" dynamodbav:"name"`
	DueDate       string `json:"dueDate,omitempty" dynamodbav:"dueDate"`
	Done          bool   `json:"done" dynamodbav:"done"`
	AttachmentURL string `json:"attachmentUrl" dynamodbav:"attachmentUrl"`
}

// Update carries the three mutable fields of an item. They are always
// written together as one partial update; todoId, userId and createdAt
// never change after creation.
type Update struct {
	Name    string
	DueDate string
	Done    bool
}

// PublicAttachmentURL returns the public-read location an item's attachment
// will have after the upload completes. Distinct from the presigned upload URL.
func PublicAttachmentURL(bucket, todoID string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, todoID)
}
