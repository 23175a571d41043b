package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/montasssar/EcommerceSnazzyWear/models"
)

// DynamoProductAdapter is a DynamoDB-backed ProductRepository. Products live
// in a table with primary key `product_id` (string).
type DynamoProductAdapter struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoProductAdapter(client *dynamodb.Client, table string) *DynamoProductAdapter {
	return &DynamoProductAdapter{client: client, table: table}
}

type ddbProduct struct {
	ProductID   string  `dynamodbav:"product_id"`
	Name        string  `dynamodbav:"name"`
	Description string  `dynamodbav:"description"`
	Price       float64 `dynamodbav:"price"`
	ImageURL    string  `dynamodbav:"image_url"`
	Category    string  `dynamodbav:"category"`
	SubCategory *string `dynamodbav:"sub_category,omitempty"`
	CreatedAt   string  `dynamodbav:"created_at"`
	UpdatedAt   string  `dynamodbav:"updated_at"`
}

func toDDB(p *models.Product) ddbProduct {
	dp := ddbProduct{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.SubCategory != "" {
		dp.SubCategory = &p.SubCategory
	}
	return dp
}

func fromDDB(dp ddbProduct) models.Product {
	p := models.Product{
		ID:          dp.ProductID,
		Name:        dp.Name,
		Description: dp.Description,
		Price:       dp.Price,
		ImageURL:    dp.ImageURL,
		Category:    dp.Category,
	}
	if dp.SubCategory != nil {
		p.SubCategory = *dp.SubCategory
	}
	if t, err := time.Parse(time.RFC3339, dp.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, dp.UpdatedAt); err == nil {
		p.UpdatedAt = t
	}
	return p
}

func (d *DynamoProductAdapter) FindByID(ctx context.Context, id string) (*models.Product, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"product_id": id})
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{TableName: &d.table, Key: key})
	if err != nil {
		return nil, fmt.Errorf("dynamodb GetItem failed: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var dp ddbProduct
	if err := attributevalue.UnmarshalMap(out.Item, &dp); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	p := fromDDB(dp)
	return &p, nil
}

func (d *DynamoProductAdapter) FindAll(ctx context.Context) ([]models.Product, error) {
	input := &dynamodb.ScanInput{TableName: &d.table}
	paginator := dynamodb.NewScanPaginator(d.client, input)

	products := []models.Product{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan page failed: %w", err)
		}
		for _, it := range page.Items {
			var dp ddbProduct
			if err := attributevalue.UnmarshalMap(it, &dp); err != nil {
				return nil, fmt.Errorf("unmarshal item: %w", err)
			}
			products = append(products, fromDDB(dp))
		}
	}
	return products, nil
}

func (d *DynamoProductAdapter) Create(ctx context.Context, product *models.Product) error {
	item, err := attributevalue.MarshalMap(toDDB(product))
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item})
	if err != nil {
		return fmt.Errorf("dynamodb PutItem failed: %w", err)
	}
	return nil
}

// Update sets the given attributes on the item. Attribute names go through
// expression placeholders because several of ours (name, category) are
// DynamoDB reserved words.
func (d *DynamoProductAdapter) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	expr := "SET "
	names := make(map[string]string, len(updates))
	values := make(map[string]types.AttributeValue, len(updates))
	i := 0
	for k, v := range updates {
		nameph := fmt.Sprintf("#k%d", i)
		valph := fmt.Sprintf(":v%d", i)
		if i > 0 {
			expr += ", "
		}
		expr += fmt.Sprintf("%s = %s", nameph, valph)
		names[nameph] = k
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal update value: %w", err)
		}
		values[valph] = av
		i++
	}

	key, err := attributevalue.MarshalMap(map[string]string{"product_id": id})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &d.table,
		Key:                       key,
		UpdateExpression:          &expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(product_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("update item failed: %w", err)
	}
	return nil
}

// Delete removes the item. Deleting an absent id succeeds; DynamoDB treats
// it as a no-op and so does the catalog.
func (d *DynamoProductAdapter) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"product_id": id})
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}
	_, err = d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &d.table, Key: key})
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	return nil
}
