package assistant

import (
	"context"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatSessionCollection = "chat_sessions"

type chatSessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewChatSessionMongoRepository(db *mongo.Database) contracts.ChatSessionRepository {
	return &chatSessionMongoRepository{
		Collection: db.Collection(chatSessionCollection),
	}
}

func (r *chatSessionMongoRepository) Insert(ctx context.Context, session *models.ChatSession) error {
	_, err := r.Collection.InsertOne(ctx, session)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *chatSessionMongoRepository) FindByID(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	session := new(models.ChatSession)
	err := r.Collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return session, nil
}

func (r *chatSessionMongoRepository) FindByPractitioner(ctx context.Context, practitionerID string, offset, limit int) ([]models.ChatSession, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.Collection.Find(ctx, bson.M{"practitionerId": practitionerID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return sessions, nil
}

func (r *chatSessionMongoRepository) CountByPractitioner(ctx context.Context, practitionerID string) (int, error) {
	total, err := r.Collection.CountDocuments(ctx, bson.M{"practitionerId": practitionerID})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return int(total), nil
}

func (r *chatSessionMongoRepository) UpdateTitle(ctx context.Context, sessionID, title string, locked bool) error {
	update := bson.M{"$set": bson.M{
		"title":       title,
		"titleLocked": locked,
		"updatedAt":   time.Now(),
	}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": sessionID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *chatSessionMongoRepository) Touch(ctx context.Context, sessionID string) error {
	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": sessionID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *chatSessionMongoRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
