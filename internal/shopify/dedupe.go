package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Deduper claims webhook delivery ids so redelivered events are skipped.
type Deduper interface {
	// Claim reports true when webhookID was already claimed.
	Claim(ctx context.Context, webhookID, shopDomain, topic string) (bool, error)
}

// NopDeduper processes every delivery.
type NopDeduper struct{}

func (NopDeduper) Claim(context.Context, string, string, string) (bool, error) { return false, nil }

type putItemAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoDeduper records delivery ids in a DynamoDB table keyed by PK with an
// ExpiresAt TTL attribute.
type DynamoDeduper struct {
	client putItemAPI
	table  string
	ttl    time.Duration
}

// NewDynamoDeduper loads AWS credentials from the default chain.
func NewDynamoDeduper(ctx context.Context, table string) (*DynamoDeduper, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &DynamoDeduper{client: dynamodb.NewFromConfig(awsCfg), table: table, ttl: 7 * 24 * time.Hour}, nil
}

func (d *DynamoDeduper) Claim(ctx context.Context, webhookID, shopDomain, topic string) (bool, error) {
	webhookID = strings.TrimSpace(webhookID)
	if webhookID == "" {
		return false, nil
	}

	now := time.Now().UTC()
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]types.AttributeValue{
			"PK":        &types.AttributeValueMemberS{Value: "WH#" + webhookID},
			"Shop":      &types.AttributeValueMemberS{Value: shopDomain},
			"Topic":     &types.AttributeValueMemberS{Value: topic},
			"CreatedAt": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
			"ExpiresAt": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", now.Add(d.ttl).Unix())},
		},
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
