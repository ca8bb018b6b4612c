// Package ddb stores digest ledgers in Amazon DynamoDB.
//
// Table schema:
//   - Partition key: ledger (string) - the ledger name
//   - Sort key: name (string) - the blob name
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name xxregion-digests \
//	  --attribute-definitions AttributeName=ledger,AttributeType=S AttributeName=name,AttributeType=S \
//	  --key-schema AttributeName=ledger,KeyType=HASH AttributeName=name,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/xxregion/digest"
)

const (
	attrLedger    = "ledger"
	attrName      = "name"
	attrAlgorithm = "algorithm"
	attrDigest    = "digest"
)

// ErrMalformedItem is returned when a stored item lacks required attributes.
var ErrMalformedItem = errors.New("ddb: malformed ledger item")

// Client is the subset of the DynamoDB API used by Ledger.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Ledger implements digest.Ledger on a DynamoDB table.
type Ledger struct {
	client    Client
	tableName string
	ledger    string
}

var _ digest.Ledger = (*Ledger)(nil)

// New creates a Ledger using the default AWS config chain.
func New(ctx context.Context, tableName, ledger string) (*Ledger, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("ddb: load aws config: %w", err)
	}
	return NewLedger(dynamodb.NewFromConfig(cfg), tableName, ledger), nil
}

// NewLedger creates a Ledger. ledger partitions the table so that several
// ledgers can share it.
func NewLedger(client Client, tableName, ledger string) *Ledger {
	return &Ledger{client: client, tableName: tableName, ledger: ledger}
}

func (l *Ledger) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrLedger: &types.AttributeValueMemberS{Value: l.ledger},
		attrName:   &types.AttributeValueMemberS{Value: name},
	}
}

// Lookup implements digest.Ledger.
func (l *Ledger) Lookup(ctx context.Context, name string) (digest.Entry, bool, error) {
	resp, err := l.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(l.tableName),
		Key:            l.key(name),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return digest.Entry{}, false, fmt.Errorf("ddb: get %s: %w", name, err)
	}
	if len(resp.Item) == 0 {
		return digest.Entry{}, false, nil
	}

	algo, ok1 := stringAttr(resp.Item, attrAlgorithm)
	hex, ok2 := stringAttr(resp.Item, attrDigest)
	if !ok1 || !ok2 {
		return digest.Entry{}, false, fmt.Errorf("%w: %s", ErrMalformedItem, name)
	}
	return digest.Entry{Name: name, Algorithm: algo, Hex: hex}, true, nil
}

// Record implements digest.Ledger. Items are written one by one; a failure
// leaves earlier entries recorded.
func (l *Ledger) Record(ctx context.Context, entries ...digest.Entry) error {
	for _, e := range entries {
		item := l.key(e.Name)
		item[attrAlgorithm] = &types.AttributeValueMemberS{Value: e.Algorithm}
		item[attrDigest] = &types.AttributeValueMemberS{Value: e.Hex}

		if _, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(l.tableName),
			Item:      item,
		}); err != nil {
			return fmt.Errorf("ddb: put %s: %w", e.Name, err)
		}
	}
	return nil
}

func stringAttr(item map[string]types.AttributeValue, key string) (string, bool) {
	v, ok := item[key].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return v.Value, true
}
