package repository

import (
	"context"
	"time"

	"finance-assistant/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type MongoExpenseRepository struct {
	collection *mongo.Collection
	now        Clock
	logger     *zap.Logger
}

func NewMongoExpenseRepository(collection *mongo.Collection, now Clock, logger *zap.Logger) *MongoExpenseRepository {
	if now == nil {
		now = time.Now
	}
	return &MongoExpenseRepository{
		collection: collection,
		now:        now,
		logger:     logger,
	}
}

func (r *MongoExpenseRepository) Insert(ctx context.Context, expense *models.Expense) error {
	if _, err := r.collection.InsertOne(ctx, expense); err != nil {
		return unavailable("insert expense", err)
	}
	return nil
}

func (r *MongoExpenseRepository) Query(ctx context.Context, userID string, windowDays int) ([]*models.Expense, error) {
	filter := bson.M{"user_id": userID}
	if windowDays > 0 {
		filter["date"] = bson.M{"$gte": windowCutoff(r.now(), windowDays)}
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, unavailable("find expenses", err)
	}
	defer cursor.Close(ctx)

	var expenses []*models.Expense
	if err := cursor.All(ctx, &expenses); err != nil {
		return nil, unavailable("decode expenses", err)
	}
	return expenses, nil
}

func (r *MongoExpenseRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, unavailable("delete expenses", err)
	}

	r.logger.Info("Expenses deleted",
		zap.String("user_id", userID),
		zap.Int64("count", result.DeletedCount),
	)
	return result.DeletedCount, nil
}
