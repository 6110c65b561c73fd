package auth

import (
	"context"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/app/models"
	"medassist-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const practitionerAccountCollection = "practitioner_accounts"

type practitionerMongoRepository struct {
	Collection *mongo.Collection
}

func NewPractitionerMongoRepository(db *mongo.Database) contracts.PractitionerAccountRepository {
	return &practitionerMongoRepository{
		Collection: db.Collection(practitionerAccountCollection),
	}
}

func (r *practitionerMongoRepository) FindByEmail(ctx context.Context, email string) (*models.PractitionerAccount, error) {
	account := new(models.PractitionerAccount)
	err := r.Collection.FindOne(ctx, bson.M{"email": email, "active": true}).Decode(account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return account, nil
}
