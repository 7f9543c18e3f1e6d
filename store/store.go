package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/LLeom997/cashbookbackend/internal/docid"
)

// Client provides document CRUD over the cashbook DynamoDB tables.
type Client struct {
	db  *dynamodb.Client
	cfg Config
}

// New creates a new Client instance.
func New(db *dynamodb.Client, cfg Config) *Client {
	cfg.validate()
	return &Client{
		db:  db,
		cfg: cfg,
	}
}

// List returns every document in the collection.
func (c *Client) List(ctx context.Context, col Collection) (ListResult, error) {
	if col.Table == "" {
		return ListResult{}, ErrUnknownCollection
	}

	var items []Document
	paginator := dynamodb.NewScanPaginator(c.db, &dynamodb.ScanInput{
		TableName: aws.String(col.Table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return ListResult{}, err
		}
		for _, raw := range page.Items {
			doc, err := unmarshalDocument(raw)
			if err != nil {
				return ListResult{}, err
			}
			items = append(items, doc)
		}
	}

	return ListResult{Items: items, Total: len(items)}, nil
}

// FindByField returns the documents whose field equals value, via the
// lookup index. The index sorts on created_at ascending, so the first
// result is the earliest-created match.
func (c *Client) FindByField(ctx context.Context, col Collection, field, value string) ([]Document, error) {
	if col.Table == "" {
		return nil, ErrUnknownCollection
	}

	var items []Document
	paginator := dynamodb.NewQueryPaginator(c.db, &dynamodb.QueryInput{
		TableName:              aws.String(col.Table),
		IndexName:              aws.String(c.cfg.LookupIndex),
		KeyConditionExpression: aws.String("#f = :v"),
		ExpressionAttributeNames: map[string]string{
			"#f": field,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			doc, err := unmarshalDocument(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, doc)
		}
	}

	return items, nil
}

// Get retrieves a document by id, returning ErrNotFound if missing.
func (c *Client) Get(ctx context.Context, col Collection, id string) (Document, error) {
	if col.Table == "" {
		return nil, ErrUnknownCollection
	}

	result, err := c.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(col.Table),
		Key:       key(id),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	return unmarshalDocument(result.Item)
}

// Create persists a new document. With id == "" the store assigns one.
// The created document, including store-managed fields, is returned.
func (c *Client) Create(ctx context.Context, col Collection, id string, data Document) (Document, error) {
	if col.Table == "" {
		return nil, ErrUnknownCollection
	}

	if id == "" {
		id = docid.New()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	doc := data.Clone()
	doc[AttrID] = id
	doc[AttrCreatedAt] = now
	doc[AttrUpdatedAt] = now

	item, err := attributevalue.MarshalMap(map[string]interface{}(doc))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	_, err = c.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(col.Table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	return doc, nil
}

// Update merges the supplied fields onto the existing document and
// returns the updated document. Managed fields in data are ignored;
// updated_at is always refreshed.
func (c *Client) Update(ctx context.Context, col Collection, id string, data Document) (Document, error) {
	if col.Table == "" {
		return nil, ErrUnknownCollection
	}

	expr, names, values, err := buildUpdateExpression(data)
	if err != nil {
		return nil, err
	}

	result, err := c.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(col.Table),
		Key:                       key(id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return unmarshalDocument(result.Attributes)
}

// Delete removes a document by id. Deleting an absent document is not
// an error. No cascade: children keep their foreign keys.
func (c *Client) Delete(ctx context.Context, col Collection, id string) error {
	if col.Table == "" {
		return ErrUnknownCollection
	}

	_, err := c.db.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(col.Table),
		Key:       key(id),
	})
	return err
}

// buildUpdateExpression builds the SET expression for an update from the
// caller-supplied fields, skipping store-managed attributes.
func buildUpdateExpression(data Document) (string, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{
		"#updated_at": AttrUpdatedAt,
	}
	values := map[string]types.AttributeValue{
		":updated_at": &types.AttributeValueMemberS{
			Value: time.Now().UTC().Format(time.RFC3339),
		},
	}

	var setClauses []string
	i := 0
	for k, v := range data {
		// Skip managed fields
		if k == AttrID || k == AttrCreatedAt || k == AttrUpdatedAt {
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		names[nameKey] = k
		values[valueKey] = av
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}

	setClauses = append(setClauses, "#updated_at = :updated_at")

	return "SET " + joinStrings(setClauses, ", "), names, values, nil
}

// key builds the primary key for a document id.
func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// unmarshalDocument converts a DynamoDB item to a Document.
func unmarshalDocument(raw map[string]types.AttributeValue) (Document, error) {
	var doc map[string]interface{}
	if err := attributevalue.UnmarshalMap(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return Document(doc), nil
}

// isConditionalCheckFailed reports whether err is a DynamoDB conditional
// check failure.
func isConditionalCheckFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

// joinStrings joins strings with a separator (avoiding strings package import).
func joinStrings(strs []string, sep string) string {
	if len(strs) == 0 {
		return ""
	}
	result := strs[0]
	for _, s := range strs[1:] {
		result += sep + s
	}
	return result
}
