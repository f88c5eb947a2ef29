package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rifamarket/rifa_api/internal/models"
)

// DirectoryRepository reads and writes the public shop directory, a
// denormalized projection of verified shops kept in MongoDB. The
// authoritative shop records live in PostgreSQL; this collection exists so
// the public listing can be served without touching them.
type DirectoryRepository struct {
	collection *mongo.Collection
}

// NewDirectoryRepository creates a new DirectoryRepository.
func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{
		collection: db.Collection("shop_directory"),
	}
}

// FindByShopID finds a directory entry by shop identifier.
func (r *DirectoryRepository) FindByShopID(ctx context.Context, shopID string) (*models.DirectoryEntry, error) {
	var entry models.DirectoryEntry
	err := r.collection.FindOne(ctx, bson.M{"shopId": shopID}).Decode(&entry)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindVerified lists verified shops with pagination, most recently updated first.
func (r *DirectoryRepository) FindVerified(ctx context.Context, page, limit int) ([]*models.DirectoryEntry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"updatedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"verificationStatus": string(models.VerificationVerified)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.DirectoryEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountVerified returns the number of verified shops in the directory.
func (r *DirectoryRepository) CountVerified(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"verificationStatus": string(models.VerificationVerified)})
}

// Upsert writes a directory entry keyed by shop identifier.
func (r *DirectoryRepository) Upsert(ctx context.Context, entry *models.DirectoryEntry) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"shopId": entry.ShopID}, entry, opts)
	return err
}

// Remove deletes a directory entry, used when a shop loses verification.
func (r *DirectoryRepository) Remove(ctx context.Context, shopID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"shopId": shopID})
	return err
}
