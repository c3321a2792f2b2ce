package stores

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"

	o "github.com/launchdarkly/laws-harness/framework/opt"
)

const (
	// Schema of the DynamoDB table
	DefaultDynamoDBTable = "laws-harness"
	tablePartitionKey    = "namespace"
	tableSortKey         = "key"
	itemValueAttribute   = "item"

	storeNamespace = "laws"
)

type DynamoDBStore struct {
	dynamodb dynamodbiface.DynamoDBAPI
	table    string
	endpoint string
}

// NewDynamoDBStore creates a client for a DynamoDB table. If endpoint is non-empty, it is used
// instead of the regional AWS endpoint, which is how a local DynamoDB container is reached; in that
// case static dummy credentials are used.
func NewDynamoDBStore(table, endpoint string) (*DynamoDBStore, error) {
	if table == "" {
		table = DefaultDynamoDBTable
	}
	config := aws.NewConfig().WithRegion("us-east-1")
	if endpoint != "" {
		config = config.WithEndpoint(endpoint).
			WithCredentials(credentials.NewStaticCredentials("dummy", "dummy", ""))
	}
	sess, err := session.NewSession(config)
	if err != nil {
		return nil, err
	}
	return NewDynamoDBStoreWithClient(dynamodb.New(sess), table, endpoint), nil
}

// NewDynamoDBStoreWithClient wraps an existing DynamoDB client.
func NewDynamoDBStoreWithClient(client dynamodbiface.DynamoDBAPI, table, endpoint string) *DynamoDBStore {
	return &DynamoDBStore{dynamodb: client, table: table, endpoint: endpoint}
}

func (d *DynamoDBStore) Name() string { return "dynamodb" }

func (d *DynamoDBStore) DSN() string {
	if d.endpoint == "" {
		return "dynamodb:" + d.table
	}
	return d.endpoint + "/" + d.table
}

// EnsureTable creates the table if it does not already exist.
func (d *DynamoDBStore) EnsureTable(ctx context.Context) error {
	_, err := d.dynamodb.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String(tablePartitionKey),
				AttributeType: aws.String("S"),
			},
			{
				AttributeName: aws.String(tableSortKey),
				AttributeType: aws.String("S"),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String(tablePartitionKey),
				KeyType:       aws.String("HASH"),
			},
			{
				AttributeName: aws.String(tableSortKey),
				KeyType:       aws.String("RANGE"),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(1),
			WriteCapacityUnits: aws.Int64(1),
		},
		TableName: aws.String(d.table),
	})
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeResourceInUseException {
		return nil
	}
	return opError(d, "create table", d.table, err)
}

func (d *DynamoDBStore) itemKey(key string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		tablePartitionKey: {S: aws.String(storeNamespace)},
		tableSortKey:      {S: aws.String(key)},
	}
}

func (d *DynamoDBStore) Get(ctx context.Context, key string) (o.Maybe[string], error) {
	result, err := d.dynamodb.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		ConsistentRead: aws.Bool(true),
		Key:            d.itemKey(key),
	})
	if err != nil {
		return o.None[string](), opError(d, "get", key, err)
	}
	if result == nil || result.Item == nil {
		return o.None[string](), nil
	}
	attr := result.Item[itemValueAttribute]
	if attr == nil || attr.S == nil {
		return o.None[string](), nil
	}
	return o.Some(*attr.S), nil
}

func (d *DynamoDBStore) Put(ctx context.Context, key, value string) error {
	item := d.itemKey(key)
	item[itemValueAttribute] = &dynamodb.AttributeValue{S: aws.String(value)}
	_, err := d.dynamodb.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	return opError(d, "put", key, err)
}

func (d *DynamoDBStore) Delete(ctx context.Context, key string) error {
	_, err := d.dynamodb.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.itemKey(key),
	})
	return opError(d, "delete", key, err)
}

func (d *DynamoDBStore) Close() error { return nil }
