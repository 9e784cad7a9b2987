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

// SurveyRepo handles MongoDB operations for surveys. Every write touches a
// single survey document so it is atomic without transactions.
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.Survey) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error)
	List(ctx context.Context, filter model.SurveyFilter) ([]*model.SurveySummary, error)
	// AppendResponse pushes resp onto the survey's responses and reports
	// whether the survey existed.
	AppendResponse(ctx context.Context, surveyID primitive.ObjectID, resp *model.Response) (bool, error)
	// FindByResponseID returns the survey holding the given response.
	FindByResponseID(ctx context.Context, responseID primitive.ObjectID) (*model.Survey, error)
	// PullResponse removes one response and reports whether anything changed.
	PullResponse(ctx context.Context, surveyID, responseID primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection(surveysCollection),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.Survey) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	survey.ID = primitive.NewObjectID()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	survey.Normalize()

	if _, err := r.collection.InsertOne(ctx, survey); err != nil {
		return primitive.NilObjectID, err
	}
	return survey.ID, nil
}

func (r *surveyRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	survey.Normalize()
	return &survey, nil
}

func (r *surveyRepo) List(ctx context.Context, filter model.SurveyFilter) ([]*model.SurveySummary, error) {
	query := bson.M{}
	if filter.OwnerID != nil {
		query["ownerId"] = *filter.OwnerID
	}
	opts := options.Find().
		SetProjection(bson.M{"title": 1, "ownerId": 1, "ownerName": 1, "createdAt": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	summaries := []*model.SurveySummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *surveyRepo) AppendResponse(ctx context.Context, surveyID primitive.ObjectID, resp *model.Response) (bool, error) {
	update := bson.M{
		"$push": bson.M{"responses": resp},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.collection.UpdateByID(ctx, surveyID, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *surveyRepo) FindByResponseID(ctx context.Context, responseID primitive.ObjectID) (*model.Survey, error) {
	var survey model.Survey
	err := r.collection.FindOne(ctx, bson.M{"responses._id": responseID}).Decode(&survey)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	survey.Normalize()
	return &survey, nil
}

func (r *surveyRepo) PullResponse(ctx context.Context, surveyID, responseID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": surveyID, "responses._id": responseID}
	update := bson.M{
		"$pull": bson.M{"responses": bson.M{"_id": responseID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *surveyRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
