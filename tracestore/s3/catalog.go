package s3

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/precisionlens/cascade/tracestore"
)

// DDBClient is the subset of the DynamoDB API the catalog uses.
// *dynamodb.Client satisfies it.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Entry is one catalogued trace run: where the document lives and the
// headline results, so dashboards can list a study without fetching
// every document from S3.
type Entry struct {
	StudyID         string
	Name            string // document name within the trace store
	Precision       string
	ConditionNumber float64
	MatrixSize      int
	Converged       bool
	FinalError      float64
	Timestamp       string
}

// Catalog indexes trace runs in DynamoDB, keyed by study.
//
// Table schema:
//   - Partition key: study_id (string)
//   - Sort key: name (string) - the document name in the trace store
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name cascade-traces \
//	  --attribute-definitions AttributeName=study_id,AttributeType=S AttributeName=name,AttributeType=S \
//	  --key-schema AttributeName=study_id,KeyType=HASH AttributeName=name,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Catalog struct {
	client    DDBClient
	tableName string
}

// NewCatalog creates a catalog over the given table.
func NewCatalog(client DDBClient, tableName string) *Catalog {
	return &Catalog{client: client, tableName: tableName}
}

// Register upserts an entry.
func (c *Catalog) Register(ctx context.Context, e Entry) error {
	if e.StudyID == "" || e.Name == "" {
		return fmt.Errorf("catalog entry needs study_id and name, got %q/%q", e.StudyID, e.Name)
	}

	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"study_id":         &types.AttributeValueMemberS{Value: e.StudyID},
			"name":             &types.AttributeValueMemberS{Value: e.Name},
			"precision":        &types.AttributeValueMemberS{Value: e.Precision},
			"condition_number": &types.AttributeValueMemberN{Value: formatFloat(e.ConditionNumber)},
			"matrix_size":      &types.AttributeValueMemberN{Value: strconv.Itoa(e.MatrixSize)},
			"converged":        &types.AttributeValueMemberBOOL{Value: e.Converged},
			"final_error":      &types.AttributeValueMemberN{Value: formatFloat(e.FinalError)},
			"timestamp":        &types.AttributeValueMemberS{Value: e.Timestamp},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register trace %q: %w", e.Name, err)
	}
	return nil
}

// Get fetches a single entry.
func (c *Catalog) Get(ctx context.Context, studyID, name string) (Entry, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"study_id": &types.AttributeValueMemberS{Value: studyID},
			"name":     &types.AttributeValueMemberS{Value: name},
		},
	})
	if err != nil {
		return Entry{}, err
	}
	if resp.Item == nil {
		return Entry{}, tracestore.ErrNotFound
	}
	return decodeEntry(resp.Item)
}

// List returns all entries of a study, in name order.
func (c *Catalog) List(ctx context.Context, studyID string) ([]Entry, error) {
	var entries []Entry
	var startKey map[string]types.AttributeValue

	for {
		resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(c.tableName),
			KeyConditionExpression: aws.String("study_id = :sid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sid": &types.AttributeValueMemberS{Value: studyID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query study %q: %w", studyID, err)
		}

		for _, item := range resp.Items {
			e, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}

		if resp.LastEvaluatedKey == nil {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	return entries, nil
}

// Delete removes an entry. Missing entries are not an error.
func (c *Catalog) Delete(ctx context.Context, studyID, name string) error {
	_, err := c.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(c.tableName),
		Key: map[string]types.AttributeValue{
			"study_id": &types.AttributeValueMemberS{Value: studyID},
			"name":     &types.AttributeValueMemberS{Value: name},
		},
	})
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func decodeEntry(item map[string]types.AttributeValue) (Entry, error) {
	var e Entry

	strAttr := func(key string) string {
		if a, ok := item[key].(*types.AttributeValueMemberS); ok {
			return a.Value
		}
		return ""
	}
	numAttr := func(key string) (float64, error) {
		a, ok := item[key].(*types.AttributeValueMemberN)
		if !ok {
			return 0, nil
		}
		return strconv.ParseFloat(a.Value, 64)
	}

	e.StudyID = strAttr("study_id")
	e.Name = strAttr("name")
	e.Precision = strAttr("precision")
	e.Timestamp = strAttr("timestamp")

	if a, ok := item["converged"].(*types.AttributeValueMemberBOOL); ok {
		e.Converged = a.Value
	}

	cond, err := numAttr("condition_number")
	if err != nil {
		return Entry{}, fmt.Errorf("invalid condition_number attribute: %w", err)
	}
	e.ConditionNumber = cond

	size, err := numAttr("matrix_size")
	if err != nil {
		return Entry{}, fmt.Errorf("invalid matrix_size attribute: %w", err)
	}
	e.MatrixSize = int(size)

	finalErr, err := numAttr("final_error")
	if err != nil {
		return Entry{}, fmt.Errorf("invalid final_error attribute: %w", err)
	}
	e.FinalError = finalErr

	return e, nil
}
