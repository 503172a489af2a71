package audit

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	"github.com/assessmentinc/submission-relay/internal/config"
	"github.com/assessmentinc/submission-relay/internal/relay"
)

// DynamoStore writes audit records to the durable table.
type DynamoStore struct {
	api   dynamodbiface.DynamoDBAPI
	table string
}

// NewDynamoStore returns an audit store bound to the configured table.
func NewDynamoStore(cfg config.AuditConfig) (*DynamoStore, error) {
	sess, err := session.NewSession(aws.NewConfig().WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &DynamoStore{
		api:   dynamodb.New(sess),
		table: cfg.TableName,
	}, nil
}

// Record puts one audit item. Items are write-once, the partition key
// embeds the invocation timestamp so repeated deliveries of the same
// notification produce independent records.
func (d *DynamoStore) Record(ctx context.Context, record relay.AuditRecord) error {
	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	_, err = d.api.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put audit record %s: %w", record.ID, err)
	}
	return nil
}
