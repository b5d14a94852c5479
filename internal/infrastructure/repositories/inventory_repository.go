package repositories

import (
	"context"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/repositories"
	"github.com/ak/larder/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type inventoryDocument struct {
	models.InventoryItem `bson:",inline"`
	Position             int `bson:"position"`
}

type inventoryRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewInventoryRepository creates the MongoDB grocery ledger store
func NewInventoryRepository(db *database.MongoDB) repositories.InventoryRepository {
	return &inventoryRepository{
		client:     db.Client(),
		collection: db.Collection(database.CollectionInventory),
	}
}

func (r *inventoryRepository) LoadAll(ctx context.Context) ([]*models.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []inventoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]*models.InventoryItem, len(docs))
	for i := range docs {
		item := docs[i].InventoryItem
		items[i] = &item
	}
	return items, nil
}

func (r *inventoryRepository) SaveAll(ctx context.Context, items []*models.InventoryItem) error {
	docs := make([]interface{}, len(items))
	for i, item := range items {
		docs[i] = inventoryDocument{InventoryItem: *item, Position: i}
	}
	return replaceCollection(ctx, r.client, r.collection, docs)
}
