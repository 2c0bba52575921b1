package address

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fid37is/toolup-store-sub000/internal/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) AddressRepository {
	return &mongoRepository{
		collection: db.Collection("addresses"),
	}
}

func (m *mongoRepository) ListAddresses(ctx context.Context, sessionID string) ([]domain.Address, error) {
	filter := bson.M{"session_id": sessionID}
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer cursor.Close(ctx)

	var addresses []domain.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

func (m *mongoRepository) AddAddress(ctx context.Context, addr domain.Address) error {
	now := time.Now()
	addr.CreatedAt = now
	addr.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, addr); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

func (m *mongoRepository) UpdateAddress(ctx context.Context, addr domain.Address) error {
	addr.UpdatedAt = time.Now()

	filter := bson.M{"_id": addr.ID, "session_id": addr.SessionID}
	result, err := m.collection.ReplaceOne(ctx, filter, addr)
	if err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (m *mongoRepository) DeleteAddress(ctx context.Context, sessionID, id string) error {
	filter := bson.M{"_id": id, "session_id": sessionID}
	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (m *mongoRepository) ClearDefaults(ctx context.Context, sessionID string) error {
	filter := bson.M{"session_id": sessionID, "is_default": true}
	update := bson.M{"$set": bson.M{"is_default": false, "updated_at": time.Now()}}

	if _, err := m.collection.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to clear default addresses: %w", err)
	}
	return nil
}

func (m *mongoRepository) SetDefault(ctx context.Context, sessionID, id string) error {
	filter := bson.M{"_id": id, "session_id": sessionID}
	update := bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now()}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set default address: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAddressNotFound
	}
	return nil
}
