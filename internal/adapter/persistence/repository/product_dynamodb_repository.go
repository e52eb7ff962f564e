package repository

import (
	"context"
	"strconv"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultProductsTableName = "products"

type productRow struct {
	ID            string `dynamodbav:"id"`
	Name          string `dynamodbav:"name"`
	SKU           string `dynamodbav:"sku,omitempty"`
	UnitPrice     string `dynamodbav:"unit_price"`
	StockQuantity int    `dynamodbav:"stock_quantity"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
	DeletedAt     string `dynamodbav:"deleted_at,omitempty"`
}

// ProductDynamoRepository persists Product entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ProductDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProductRepository = (*ProductDynamoRepository)(nil)

func NewProductDynamoRepository(ddb *dynamodb.Client) *ProductDynamoRepository {
	return &ProductDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PRODUCTS_TABLE", defaultProductsTableName),
	}
}

func (r *ProductDynamoRepository) Create(ctx context.Context, p entities.Product) (entities.Product, error) {
	av, err := attributevalue.MarshalMap(toProductRow(p))
	if err != nil {
		return entities.Product{}, err
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
		return entities.Product{}, err
	}
	return p, nil
}

func (r *ProductDynamoRepository) GetByID(ctx context.Context, id string) (entities.Product, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Product{}, err
	}
	if len(out.Item) == 0 {
		return entities.Product{}, nil
	}

	var row productRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.Product{}, err
	}
	if row.DeletedAt != "" {
		return entities.Product{}, nil
	}
	return fromProductRow(row), nil
}

func toProductRow(p entities.Product) productRow {
	row := productRow{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		UnitPrice:     floatToString(p.UnitPrice),
		StockQuantity: p.StockQuantity,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
	if p.DeletedAt != nil {
		row.DeletedAt = formatTime(*p.DeletedAt)
	}
	return row
}

func fromProductRow(row productRow) entities.Product {
	unitPrice, _ := strconv.ParseFloat(row.UnitPrice, 64)
	return entities.Product{
		ID:            row.ID,
		Name:          row.Name,
		SKU:           row.SKU,
		UnitPrice:     unitPrice,
		StockQuantity: row.StockQuantity,
		CreatedAt:     parseTime(row.CreatedAt),
		UpdatedAt:     parseTime(row.UpdatedAt),
		DeletedAt:     parseTimePtr(row.DeletedAt),
	}
}
