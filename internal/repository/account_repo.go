package repository

import (
	"context"
	"time"

	"surveyhub/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AccountRepo handles MongoDB operations for one account namespace (users or
// admins). Lookups return (nil, nil) when nothing matches.
type AccountRepo interface {
	Create(ctx context.Context, account *model.Account) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)
	// Update replaces name, email and password hash; it reports whether the
	// account existed.
	Update(ctx context.Context, account *model.Account) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type accountRepo struct {
	collection *mongo.Collection
}

// NewUserRepo returns the repository of the users collection
func NewUserRepo(db *mongo.Database) AccountRepo {
	return &accountRepo{collection: db.Collection(usersCollection)}
}

// NewAdminRepo returns the repository of the admins collection
func NewAdminRepo(db *mongo.Database) AccountRepo {
	return &accountRepo{collection: db.Collection(adminsCollection)}
}

func (r *accountRepo) Create(ctx context.Context, account *model.Account) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}
	return account.ID, nil
}

func (r *accountRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *accountRepo) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	var account model.Account
	err := r.collection.FindOne(ctx, filter).Decode(&account)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) List(ctx context.Context) ([]*model.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := []*model.Account{}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.Account) (bool, error) {
	account.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":         account.Name,
		"email":        account.Email,
		"passwordHash": account.PasswordHash,
		"updatedAt":    account.UpdatedAt,
	}}

	res, err := r.collection.UpdateByID(ctx, account.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, ErrDuplicateEmail
		}
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *accountRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
