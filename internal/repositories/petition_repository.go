package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/petism/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store-level sentinel errors. The service layer translates these into its
// own error taxonomy before they reach handlers.
var (
	ErrPetitionNotFound = errors.New("petition not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadySigned    = errors.New("petition already signed by this identity")
)

// ReactionKind selects which comment counter a reaction increments.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "likes"
	ReactionDislike ReactionKind = "dislikes"
)

// PetitionRepository defines the interface for petition data operations.
// AddSignature and MarkSuccessful must be atomic conditional updates: the
// store, not the process, is the arbiter of serialization, since multiple
// server instances may run against the same database.
type PetitionRepository interface {
	CreatePetition(ctx context.Context, petition *models.Petition) error
	GetPetitionByID(ctx context.Context, id string) (*models.Petition, error)
	GetAllPetitions(ctx context.Context) ([]models.Petition, error)
	UpdatePetition(ctx context.Context, id, title, content, image string) (*models.Petition, error)
	DeletePetition(ctx context.Context, id string) error
	AddSignature(ctx context.Context, id, identity string) (*models.Petition, error)
	MarkSuccessful(ctx context.Context, id string) (bool, error)
	AddComment(ctx context.Context, id string, comment *models.Comment) error
	ReactToComment(ctx context.Context, id, commentID string, kind ReactionKind) (*models.Comment, error)
}

// MongoPetitionRepository implements PetitionRepository for MongoDB
type MongoPetitionRepository struct {
	collection *mongo.Collection
}

// NewMongoPetitionRepository creates a new MongoPetitionRepository
func NewMongoPetitionRepository(db *mongo.Database) *MongoPetitionRepository {
	return &MongoPetitionRepository{collection: db.Collection("notes")}
}

// CreatePetition creates a new petition in MongoDB
func (r *MongoPetitionRepository) CreatePetition(ctx context.Context, petition *models.Petition) error {
	petition.ID = primitive.NewObjectID()
	petition.CreatedAt = time.Now()
	petition.UpdatedAt = time.Now()
	if petition.SignedBy == nil {
		petition.SignedBy = []string{}
	}
	if petition.Comments == nil {
		petition.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, petition)
	return err
}

// GetPetitionByID retrieves a petition by ID from MongoDB
func (r *MongoPetitionRepository) GetPetitionByID(ctx context.Context, id string) (*models.Petition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPetitionNotFound
	}

	var petition models.Petition
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&petition)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPetitionNotFound
		}
		return nil, err
	}
	return &petition, nil
}

// GetAllPetitions retrieves all petitions from MongoDB, newest first
func (r *MongoPetitionRepository) GetAllPetitions(ctx context.Context) ([]models.Petition, error) {
	petitions := []models.Petition{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &petitions); err != nil {
		return nil, err
	}
	return petitions, nil
}

// UpdatePetition sets the owner-editable fields of a petition. Last write
// wins; concurrent signatures are not serialized against edits.
func (r *MongoPetitionRepository) UpdatePetition(ctx context.Context, id, title, content, image string) (*models.Petition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPetitionNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"title":      title,
			"content":    content,
			"image":      image,
			"updated_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var petition models.Petition
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&petition)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPetitionNotFound
		}
		return nil, err
	}
	return &petition, nil
}

// DeletePetition deletes a petition by ID from MongoDB
func (r *MongoPetitionRepository) DeletePetition(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPetitionNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPetitionNotFound
	}
	return nil
}

// AddSignature records one signature for identity in a single conditional
// update: the filter excludes documents that already contain the identity, so
// the duplicate check and the increment cannot race. Two concurrent requests
// from the same identity can never both match.
func (r *MongoPetitionRepository) AddSignature(ctx context.Context, id, identity string) (*models.Petition, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPetitionNotFound
	}

	filter := bson.M{"_id": objID, "signed_by": bson.M{"$ne": identity}}
	update := bson.M{
		"$addToSet": bson.M{"signed_by": identity},
		"$inc":      bson.M{"signature_count": 1},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var petition models.Petition
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&petition)
	if err == nil {
		return &petition, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// No match: either the petition is gone or the identity already signed.
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPetitionNotFound
	}
	return nil, ErrAlreadySigned
}

// MarkSuccessful flips the one-way success latch. The filter requires the
// latch to still be open and the count to have reached the target, so across
// any number of racing requests (or server instances) exactly one caller
// observes the flip and owns the goal-reached notification.
func (r *MongoPetitionRepository) MarkSuccessful(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrPetitionNotFound
	}

	filter := bson.M{
		"_id":           objID,
		"is_successful": false,
		"$expr":         bson.M{"$gte": bson.A{"$signature_count", "$target_signatures"}},
	}
	update := bson.M{"$set": bson.M{"is_successful": true, "updated_at": time.Now()}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// AddComment appends a comment to the petition's embedded comment list,
// assigning its ID and creation time.
func (r *MongoPetitionRepository) AddComment(ctx context.Context, id string, comment *models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPetitionNotFound
	}

	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPetitionNotFound
	}
	return nil
}

// ReactToComment increments one reaction counter on the matched embedded
// comment via the positional operator. Reactions are not deduplicated.
func (r *MongoPetitionRepository) ReactToComment(ctx context.Context, id, commentID string, kind ReactionKind) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPetitionNotFound
	}
	cmtID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}

	filter := bson.M{"_id": objID, "comments._id": cmtID}
	update := bson.M{
		"$inc": bson.M{"comments.$." + string(kind): 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var petition models.Petition
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&petition)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, err
		}
		count, cErr := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
		if cErr != nil {
			return nil, cErr
		}
		if count == 0 {
			return nil, ErrPetitionNotFound
		}
		return nil, ErrCommentNotFound
	}

	for i := range petition.Comments {
		if petition.Comments[i].ID == cmtID {
			return &petition.Comments[i], nil
		}
	}
	return nil, ErrCommentNotFound
}
