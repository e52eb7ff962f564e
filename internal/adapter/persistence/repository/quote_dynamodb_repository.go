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
	defaultQuotesTableName    = "quotes"
	quotesServiceOrderIDIndex = "service_order_id-index"
)

type quoteRow struct {
	ID                    string `dynamodbav:"id"`
	ServiceOrderID        string `dynamodbav:"service_order_id"`
	Version               int    `dynamodbav:"version"`
	Status                string `dynamodbav:"status"`
	DiscountPercent       string `dynamodbav:"discount_percent"`
	DiscountJustification string `dynamodbav:"discount_justification,omitempty"`
	TotalParts            string `dynamodbav:"total_parts"`
	TotalLabor            string `dynamodbav:"total_labor"`
	TotalOverall          string `dynamodbav:"total_overall"`
	Notes                 string `dynamodbav:"notes,omitempty"`
	CreatedAt             string `dynamodbav:"created_at"`
	UpdatedAt             string `dynamodbav:"updated_at"`
	DeletedAt             string `dynamodbav:"deleted_at,omitempty"`
}

// QuoteDynamoRepository persists Quote headers in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: service_order_id-index (HASH: service_order_id, RANGE: version (N))
//
// Soft delete is a deleted_at attribute; every read filters it out.

type QuoteDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteRow(q))
	if err != nil {
		return entities.Quote{}, err
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
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var row quoteRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Quote{}, err
	}
	if row.DeletedAt != "" {
		return entities.Quote{}, nil
	}
	return fromQuoteRow(row), nil
}

func (r *QuoteDynamoRepository) ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.Quote, error) {
	rows, err := r.queryByServiceOrderID(ctx, serviceOrderID, true)
	if err != nil {
		return nil, err
	}

	quotes := make([]entities.Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, fromQuoteRow(row))
	}
	return quotes, nil
}

// GetLatestByServiceOrderID returns the highest-version active quote for the
// service order, or a zero value when none exists.
func (r *QuoteDynamoRepository) GetLatestByServiceOrderID(ctx context.Context, serviceOrderID string) (entities.Quote, error) {
	rows, err := r.queryByServiceOrderID(ctx, serviceOrderID, false)
	if err != nil {
		return entities.Quote{}, err
	}
	if len(rows) == 0 {
		return entities.Quote{}, nil
	}
	return fromQuoteRow(rows[0]), nil
}

// NextVersion allocates the version number for a new quote as latest+1.
//
// Read-then-insert, NOT atomic: two concurrent creates for the same service
// order can both observe the same latest version. See IQuoteRepository.
func (r *QuoteDynamoRepository) NextVersion(ctx context.Context, serviceOrderID string) (int, error) {
	latest, err := r.GetLatestByServiceOrderID(ctx, serviceOrderID)
	if err != nil {
		return 0, err
	}
	return latest.Version + 1, nil
}

func (r *QuoteDynamoRepository) UpdateHeaderByID(ctx context.Context, id string, discountPercent float64, discountJustification, notes string) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #discount_percent = :discount_percent, #discount_justification = :discount_justification, #notes = :notes, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":discount_percent":       &types.AttributeValueMemberS{Value: floatToString(discountPercent)},
			":discount_justification": &types.AttributeValueMemberS{Value: discountJustification},
			":notes":                  &types.AttributeValueMemberS{Value: notes},
			":updated_at":             &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#discount_percent":       "discount_percent",
			"#discount_justification": "discount_justification",
			"#notes":                  "notes",
			"#updated_at":             "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) UpdateAggregatesByID(ctx context.Context, id string, totalParts, totalLabor, totalOverall float64, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #total_parts = :total_parts, #total_labor = :total_labor, #total_overall = :total_overall, #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":total_parts":   &types.AttributeValueMemberS{Value: floatToString(totalParts)},
			":total_labor":   &types.AttributeValueMemberS{Value: floatToString(totalLabor)},
			":total_overall": &types.AttributeValueMemberS{Value: floatToString(totalOverall)},
			":status":        &types.AttributeValueMemberS{Value: string(status)},
			":updated_at":    &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#total_parts":   "total_parts",
			"#total_labor":   "total_labor",
			"#total_overall": "total_overall",
			"#status":        "status",
			"#updated_at":    "updated_at",
		}
		return expr, vals, names
	})
}

func (r *QuoteDynamoRepository) SoftDeleteByID(ctx context.Context, id string) (entities.Quote, error) {
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

func (r *QuoteDynamoRepository) queryByServiceOrderID(ctx context.Context, serviceOrderID string, ascending bool) ([]quoteRow, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(quotesServiceOrderIDIndex),
		KeyConditionExpression: aws.String("service_order_id = :sid"),
		FilterExpression:       aws.String("attribute_not_exists(deleted_at)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: serviceOrderID},
		},
		ScanIndexForward: aws.Bool(ascending),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]quoteRow, 0, len(out.Items))
	for _, raw := range out.Items {
		var row quoteRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
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
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	var row quoteRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteRow(row), nil
}

func toQuoteRow(q entities.Quote) quoteRow {
	row := quoteRow{
		ID:                    q.ID,
		ServiceOrderID:        q.ServiceOrderID,
		Version:               q.Version,
		Status:                string(q.Status),
		DiscountPercent:       floatToString(q.DiscountPercent),
		DiscountJustification: q.DiscountJustification,
		TotalParts:            floatToString(q.TotalParts),
		TotalLabor:            floatToString(q.TotalLabor),
		TotalOverall:          floatToString(q.TotalOverall),
		Notes:                 q.Notes,
		CreatedAt:             formatTime(q.CreatedAt),
		UpdatedAt:             formatTime(q.UpdatedAt),
	}
	if q.DeletedAt != nil {
		row.DeletedAt = formatTime(*q.DeletedAt)
	}
	return row
}

func fromQuoteRow(row quoteRow) entities.Quote {
	discount, _ := strconv.ParseFloat(row.DiscountPercent, 64)
	totalParts, _ := strconv.ParseFloat(row.TotalParts, 64)
	totalLabor, _ := strconv.ParseFloat(row.TotalLabor, 64)
	totalOverall, _ := strconv.ParseFloat(row.TotalOverall, 64)
	return entities.Quote{
		ID:                    row.ID,
		ServiceOrderID:        row.ServiceOrderID,
		Version:               row.Version,
		Status:                entities.QuoteStatus(row.Status),
		DiscountPercent:       discount,
		DiscountJustification: row.DiscountJustification,
		TotalParts:            totalParts,
		TotalLabor:            totalLabor,
		TotalOverall:          totalOverall,
		Notes:                 row.Notes,
		CreatedAt:             parseTime(row.CreatedAt),
		UpdatedAt:             parseTime(row.UpdatedAt),
		DeletedAt:             parseTimePtr(row.DeletedAt),
	}
}
