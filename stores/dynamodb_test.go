package stores

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamoDB stores items in memory, keyed by namespace and key. Methods that DynamoDBStore
// does not call are left to the embedded nil interface and will panic if used.
type fakeDynamoDB struct {
	dynamodbiface.DynamoDBAPI
	items        map[string]map[string]*dynamodb.AttributeValue
	tables       map[string]bool
	failWith     error
	lastGetInput *dynamodb.GetItemInput
	lock         sync.Mutex
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{
		items:  make(map[string]map[string]*dynamodb.AttributeValue),
		tables: make(map[string]bool),
	}
}

func fakeItemID(table string, key map[string]*dynamodb.AttributeValue) string {
	return table + "|" + aws.StringValue(key[tablePartitionKey].S) + "|" + aws.StringValue(key[tableSortKey].S)
}

func (f *fakeDynamoDB) CreateTableWithContext(
	_ aws.Context, input *dynamodb.CreateTableInput, _ ...request.Option,
) (*dynamodb.CreateTableOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	name := aws.StringValue(input.TableName)
	if f.tables[name] {
		return nil, awserr.New(dynamodb.ErrCodeResourceInUseException, "table exists", nil)
	}
	f.tables[name] = true
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeDynamoDB) GetItemWithContext(
	_ aws.Context, input *dynamodb.GetItemInput, _ ...request.Option,
) (*dynamodb.GetItemOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.lastGetInput = input
	if f.failWith != nil {
		return nil, f.failWith
	}
	return &dynamodb.GetItemOutput{Item: f.items[fakeItemID(aws.StringValue(input.TableName), input.Key)]}, nil
}

func (f *fakeDynamoDB) PutItemWithContext(
	_ aws.Context, input *dynamodb.PutItemInput, _ ...request.Option,
) (*dynamodb.PutItemOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.items[fakeItemID(aws.StringValue(input.TableName), input.Item)] = input.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItemWithContext(
	_ aws.Context, input *dynamodb.DeleteItemInput, _ ...request.Option,
) (*dynamodb.DeleteItemOutput, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	delete(f.items, fakeItemID(aws.StringValue(input.TableName), input.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoDBStore(t *testing.T) {
	fake := newFakeDynamoDB()
	s := NewDynamoDBStoreWithClient(fake, "t1", "")
	require.NoError(t, s.EnsureTable(context.Background()))
	require.NoError(t, s.EnsureTable(context.Background()))
	assert.True(t, fake.tables["t1"])

	testStoreBasics(t, s)
	assert.True(t, aws.BoolValue(fake.lastGetInput.ConsistentRead))
	assert.Equal(t, "dynamodb:t1", s.DSN())
}

func TestDynamoDBStoreErrors(t *testing.T) {
	fake := newFakeDynamoDB()
	fake.failWith = errors.New("throttled")
	s := NewDynamoDBStoreWithClient(fake, "t1", "http://localhost:8000")
	assert.Equal(t, "http://localhost:8000/t1", s.DSN())

	_, err := s.Get(context.Background(), "k")
	assert.EqualError(t, err, `dynamodb get "k": throttled`)
	assert.EqualError(t, s.Put(context.Background(), "k", "v"), `dynamodb put "k": throttled`)
	assert.EqualError(t, s.Delete(context.Background(), "k"), `dynamodb delete "k": throttled`)
}
