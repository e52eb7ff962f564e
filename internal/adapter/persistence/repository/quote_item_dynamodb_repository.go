package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuoteItemsTableName = "quote_items"
	quoteItemsQuoteIDIndex     = "quote_id-index"
)

type quoteItemRow struct {
	ID             string `dynamodbav:"id"`
	QuoteID        string `dynamodbav:"quote_id"`
	ProductID      string `dynamodbav:"product_id,omitempty"`
	ItemType       string `dynamodbav:"item_type"`
	Description    string `dynamodbav:"description"`
	Quantity       int    `dynamodbav:"quantity"`
	UnitPrice      string `dynamodbav:"unit_price"`
	TotalPrice     string `dynamodbav:"total_price"`
	ApprovalStatus string `dynamodbav:"approval_status"`
	WarrantyDays   int    `dynamodbav:"warranty_days"`
	Notes          string `dynamodbav:"notes,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
	DeletedAt      string `dynamodbav:"deleted_at,omitempty"`
}

// QuoteItemDynamoRepository persists QuoteItem entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (HASH: quote_id)

type QuoteItemDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteItemRepository = (*QuoteItemDynamoRepository)(nil)

func NewQuoteItemDynamoRepository(ddb *dynamodb.Client) *QuoteItemDynamoRepository {
	return &QuoteItemDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTE_ITEMS_TABLE", defaultQuoteItemsTableName),
	}
}

func (r *QuoteItemDynamoRepository) Create(ctx context.Context, it entities.QuoteItem) (entities.QuoteItem, error) {
	av, err := attributevalue.MarshalMap(toQuoteItemRow(it))
	if err != nil {
		return entities.QuoteItem{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.QuoteItem{}, err
	}
	return it, nil
}

func (r *QuoteItemDynamoRepository) GetByID(ctx context.Context, id string) (entities.QuoteItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.QuoteItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.QuoteItem{}, nil
	}

	var row quoteItemRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.QuoteItem{}, err
	}
	if row.DeletedAt != "" {
		return entities.QuoteItem{}, nil
	}
	return fromQuoteItemRow(row), nil
}

func (r *QuoteItemDynamoRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.QuoteItem, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quoteItemsQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		FilterExpression:       aws.String("attribute_not_exists(deleted_at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.QuoteItem, 0, len(out.Items))
	for _, raw := range out.Items {
		var row quoteItemRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			return nil, err
		}
		items = append(items, fromQuoteItemRow(row))
	}
	return items, nil
}

func (r *QuoteItemDynamoRepository) Update(ctx context.Context, it entities.QuoteItem) (entities.QuoteItem, error) {
	return r.update(ctx, it.ID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #product_id = :product_id, #item_type = :item_type, #description = :description, " +
			"#quantity = :quantity, #unit_price = :unit_price, #total_price = :total_price, " +
			"#warranty_days = :warranty_days, #notes = :notes, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":product_id":    &types.AttributeValueMemberS{Value: it.ProductID},
			":item_type":     &types.AttributeValueMemberS{Value: string(it.ItemType)},
			":description":   &types.AttributeValueMemberS{Value: it.Description},
			":quantity":      &types.AttributeValueMemberN{Value: strconv.Itoa(it.Quantity)},
			":unit_price":    &types.AttributeValueMemberS{Value: floatToString(it.UnitPrice)},
			":total_price":   &types.AttributeValueMemberS{Value: floatToString(it.TotalPrice)},
			":warranty_days": &types.AttributeValueMemberN{Value: strconv.Itoa(it.WarrantyDays)},
			":notes":         &types.AttributeValueMemberS{Value: it.Notes},
			":updated_at":    &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#product_id":    "product_id",
			"#item_type":     "item_type",
			"#description":   "description",
			"#quantity":      "quantity",
			"#unit_price":    "unit_price",
			"#total_price":   "total_price",
			"#warranty_days": "warranty_days",
			"#notes":         "notes",
			"#updated_at":    "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteItemDynamoRepository) UpdateApprovalStatusByID(ctx context.Context, id string, status entities.ItemApprovalStatus) (entities.QuoteItem, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #approval_status = :approval_status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":approval_status": &types.AttributeValueMemberS{Value: string(status)},
			":updated_at":      &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#approval_status": "approval_status",
			"#updated_at":      "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteItemDynamoRepository) SoftDeleteByID(ctx context.Context, id string) (entities.QuoteItem, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #deleted_at = :deleted_at, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":deleted_at": &types.AttributeValueMemberS{Value: now},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#deleted_at": "deleted_at",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteItemDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.QuoteItem, error) {
	now := formatTime(time.Now())
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.QuoteItem{}, nil
		}
		return entities.QuoteItem{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.QuoteItem{}, nil
	}
	var row quoteItemRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.QuoteItem{}, err
	}
	return fromQuoteItemRow(row), nil
}

func toQuoteItemRow(it entities.QuoteItem) quoteItemRow {
	row := quoteItemRow{
		ID:             it.ID,
		QuoteID:        it.QuoteID,
		ProductID:      it.ProductID,
		ItemType:       string(it.ItemType),
		Description:    it.Description,
		Quantity:       it.Quantity,
		UnitPrice:      floatToString(it.UnitPrice),
		TotalPrice:     floatToString(it.TotalPrice),
		ApprovalStatus: string(it.ApprovalStatus),
		WarrantyDays:   it.WarrantyDays,
		Notes:          it.Notes,
		CreatedAt:      formatTime(it.CreatedAt),
		UpdatedAt:      formatTime(it.UpdatedAt),
	}
	if it.DeletedAt != nil {
		row.DeletedAt = formatTime(*it.DeletedAt)
	}
	return row
}

func fromQuoteItemRow(row quoteItemRow) entities.QuoteItem {
	unitPrice, _ := strconv.ParseFloat(row.UnitPrice, 64)
	totalPrice, _ := strconv.ParseFloat(row.TotalPrice, 64)
	return entities.QuoteItem{
		ID:             row.ID,
		QuoteID:        row.QuoteID,
		ProductID:      row.ProductID,
		ItemType:       entities.ItemType(row.ItemType),
		Description:    row.Description,
		Quantity:       row.Quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     totalPrice,
		ApprovalStatus: entities.ItemApprovalStatus(row.ApprovalStatus),
		WarrantyDays:   row.WarrantyDays,
		Notes:          row.Notes,
		CreatedAt:      parseTime(row.CreatedAt),
		UpdatedAt:      parseTime(row.UpdatedAt),
		DeletedAt:      parseTimePtr(row.DeletedAt),
	}
}
