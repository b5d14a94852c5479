package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/ak/larder/internal/domain/models"
	"github.com/ak/larder/internal/domain/repositories"
	"github.com/ak/larder/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recipeDocument is a recipe as stored in MongoDB; position keeps catalog order
type recipeDocument struct {
	models.Recipe `bson:",inline"`
	Position      int `bson:"position"`
}

type recipeRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewRecipeRepository creates the MongoDB recipe store
func NewRecipeRepository(db *database.MongoDB) repositories.RecipeRepository {
	return &recipeRepository{
		client:     db.Client(),
		collection: db.Collection(database.CollectionRecipes),
	}
}

func (r *recipeRepository) LoadAll(ctx context.Context) ([]*models.Recipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	recipes := make([]*models.Recipe, len(docs))
	for i := range docs {
		recipe := docs[i].Recipe
		recipes[i] = &recipe
	}
	return recipes, nil
}

func (r *recipeRepository) SaveAll(ctx context.Context, recipes []*models.Recipe) error {
	docs := make([]interface{}, len(recipes))
	for i, recipe := range recipes {
		docs[i] = recipeDocument{Recipe: *recipe, Position: i}
	}
	return replaceCollection(ctx, r.client, r.collection, docs)
}

// replaceCollection swaps the whole collection for docs. A transaction is used
// when the deployment supports one; standalone servers fall back to a plain
// delete and insert.
func replaceCollection(ctx context.Context, client *mongo.Client, coll *mongo.Collection, docs []interface{}) error {
	replace := func(ctx context.Context) error {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", coll.Name(), err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
		}
		return nil
	}

	session, err := client.StartSession()
	if err != nil {
		return replace(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, replace(sc)
	})
	if err != nil && isTransactionUnsupported(err) {
		return replace(ctx)
	}
	return err
}

// isTransactionUnsupported reports whether err comes from a standalone server
// rejecting transactions (IllegalOperation)
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}
