package repository

import (
	"context"
	"errors"
	"time"

	"assistec/internal/domain/entities"
	"assistec/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultServiceOrdersTableName = "service_orders"

type serviceOrderRow struct {
	ID            string `dynamodbav:"id"`
	CustomerName  string `dynamodbav:"customer_name"`
	DeviceBrand   string `dynamodbav:"device_brand"`
	DeviceModel   string `dynamodbav:"device_model"`
	DeviceSerial  string `dynamodbav:"device_serial,omitempty"`
	ReportedIssue string `dynamodbav:"reported_issue"`
	Status        string `dynamodbav:"status"`
	CreatedAt     string `dynamodbav:"created_at"`
	UpdatedAt     string `dynamodbav:"updated_at"`
	DeletedAt     string `dynamodbav:"deleted_at,omitempty"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName),
	}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, so entities.ServiceOrder) (entities.ServiceOrder, error) {
	av, err := attributevalue.MarshalMap(toServiceOrderRow(so))
	if err != nil {
		return entities.ServiceOrder{}, err
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
		return entities.ServiceOrder{}, err
	}
	return so, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var row serviceOrderRow
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return entities.ServiceOrder{}, err
	}
	if row.DeletedAt != "" {
		return entities.ServiceOrder{}, nil
	}
	return fromServiceOrderRow(row), nil
}

func (r *ServiceOrderDynamoRepository) UpdateStatusByID(ctx context.Context, id string, status entities.ServiceOrderStatus) (entities.ServiceOrder, error) {
	now := formatTime(time.Now())

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.ServiceOrder{}, nil
		}
		return entities.ServiceOrder{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ServiceOrder{}, nil
	}
	var row serviceOrderRow
	if err := attributevalue.UnmarshalMap(out.Attributes, &row); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderRow(row), nil
}

func toServiceOrderRow(so entities.ServiceOrder) serviceOrderRow {
	row := serviceOrderRow{
		ID:            so.ID,
		CustomerName:  so.CustomerName,
		DeviceBrand:   so.DeviceBrand,
		DeviceModel:   so.DeviceModel,
		DeviceSerial:  so.DeviceSerial,
		ReportedIssue: so.ReportedIssue,
		Status:        string(so.Status),
		CreatedAt:     formatTime(so.CreatedAt),
		UpdatedAt:     formatTime(so.UpdatedAt),
	}
	if so.DeletedAt != nil {
		row.DeletedAt = formatTime(*so.DeletedAt)
	}
	return row
}

func fromServiceOrderRow(row serviceOrderRow) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:            row.ID,
		CustomerName:  row.CustomerName,
		DeviceBrand:   row.DeviceBrand,
		DeviceModel:   row.DeviceModel,
		DeviceSerial:  row.DeviceSerial,
		ReportedIssue: row.ReportedIssue,
		Status:        entities.ServiceOrderStatus(row.Status),
		CreatedAt:     parseTime(row.CreatedAt),
		UpdatedAt:     parseTime(row.UpdatedAt),
		DeletedAt:     parseTimePtr(row.DeletedAt),
	}
}
