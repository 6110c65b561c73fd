package assistant

import (
	"context"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const chatMessageCollection = "chat_messages"

type chatMessageMongoRepository struct {
	Collection *mongo.Collection
}

func NewChatMessageMongoRepository(db *mongo.Database) contracts.ChatMessageRepository {
	return &chatMessageMongoRepository{
		Collection: db.Collection(chatMessageCollection),
	}
}

func (r *chatMessageMongoRepository) Insert(ctx context.Context, message *models.ChatMessage) error {
	_, err := r.Collection.InsertOne(ctx, message)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// FindBySession returns messages newest first; the chat screen renders the
// list bottom-up so page 1 is the most recent turns.
func (r *chatMessageMongoRepository) FindBySession(ctx context.Context, sessionID string, offset, limit int) ([]models.ChatMessage, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.Collection.Find(ctx, bson.M{"sessionId": sessionID}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return messages, nil
}

func (r *chatMessageMongoRepository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	total, err := r.Collection.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return int(total), nil
}

func (r *chatMessageMongoRepository) FindByClientMessageID(ctx context.Context, sessionID, clientMessageID string) (*models.ChatMessage, error) {
	message := new(models.ChatMessage)
	filter := bson.M{"sessionId": sessionID, "clientMessageId": clientMessageID}
	err := r.Collection.FindOne(ctx, filter).Decode(message)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return message, nil
}

func (r *chatMessageMongoRepository) FindReplyTo(ctx context.Context, sessionID, userMessageID string) (*models.ChatMessage, error) {
	message := new(models.ChatMessage)
	filter := bson.M{"sessionId": sessionID, "replyToId": userMessageID}
	err := r.Collection.FindOne(ctx, filter).Decode(message)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return message, nil
}

func (r *chatMessageMongoRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
