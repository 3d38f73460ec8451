package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/example/fleet-inventory/internal/audit"
	"github.com/example/fleet-inventory/internal/clock"
)

// DynamoAuditStore is an append-only audit recorder backed by DynamoDB,
// for deployments where the office keeps its compliance trail off-ship.
// All events share one partition key so the trail can be read back in
// timestamp order.
type DynamoAuditStore struct {
	client    *dynamodb.Client
	tableName string
	clk       clock.Clock
}

const auditPartition = "AUDIT"

// dynamoAuditEvent is the DynamoDB item layout. Partition key pk, sort
// key sk (timestamp plus id for uniqueness).
type dynamoAuditEvent struct {
	PK        string `dynamodbav:"pk"`
	SK        string `dynamodbav:"sk"`
	ID        string `dynamodbav:"id"`
	Timestamp string `dynamodbav:"timestamp"`
	Actor     string `dynamodbav:"actor"`
	Role      string `dynamodbav:"role"`
	Action    string `dynamodbav:"action"`
	Details   string `dynamodbav:"details"`
}

func NewDynamoAuditStore(client *dynamodb.Client, tableName string, clk clock.Clock) *DynamoAuditStore {
	return &DynamoAuditStore{client: client, tableName: tableName, clk: clk}
}

// Record appends one audit event. The conditional write guards against
// any accidental overwrite of an existing record.
func (s *DynamoAuditStore) Record(ctx context.Context, actor, role, action, details string) (*audit.Event, error) {
	event := audit.Event{
		ID:        uuid.New().String(),
		Timestamp: s.clk.Now(),
		Actor:     actor,
		Role:      role,
		Action:    action,
		Details:   details,
	}

	item := dynamoAuditEvent{
		PK:        auditPartition,
		SK:        event.Timestamp.Format(time.RFC3339Nano) + "#" + event.ID,
		ID:        event.ID,
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Actor:     event.Actor,
		Role:      event.Role,
		Action:    event.Action,
		Details:   event.Details,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit event: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(pk) AND attribute_not_exists(sk)"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put audit event: %w", err)
	}

	return &event, nil
}

// Events returns the full audit trail, oldest first.
func (s *DynamoAuditStore) Events(ctx context.Context) ([]audit.Event, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: auditPartition},
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	events := make([]audit.Event, 0, len(result.Items))
	for _, raw := range result.Items {
		var de dynamoAuditEvent
		if err := attributevalue.UnmarshalMap(raw, &de); err != nil {
			continue
		}
		timestamp, _ := time.Parse(time.RFC3339Nano, de.Timestamp)
		events = append(events, audit.Event{
			ID:        de.ID,
			Timestamp: timestamp,
			Actor:     de.Actor,
			Role:      de.Role,
			Action:    de.Action,
			Details:   de.Details,
		})
	}
	return events, nil
}
