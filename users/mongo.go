package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding user documents.
const CollectionName = "users"

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password,omitempty"`
	FirstName    string             `bson:"firstName"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (m *mongoUser) toUser() *User {
	return &User{
		ID:           m.ID.Hex(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		CreatedAt:    m.CreatedAt,
	}
}

// withoutHash is applied to every read that does not explicitly ask for the hash.
var withoutHash = bson.D{{Key: "password", Value: 0}}

// MongoRepository stores users as documents in a single collection with a
// unique index on email.
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoRepository creates a repository over coll.
func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll, now: time.Now}
}

// EnsureIndexes creates the unique email index. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, u *User) (*User, error) {
	doc := mongoUser{
		ID:           primitive.NewObjectID(),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		// BSON dates carry millisecond precision.
		CreatedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.PasswordHash = ""
	return doc.toUser(), nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string, withHash bool) (*User, error) {
	opts := options.FindOne()
	if !withHash {
		opts.SetProjection(withoutHash)
	}
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}}, opts)
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, options.FindOne().SetProjection(withoutHash))
}

func (r *MongoRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", ErrNotFound
	}
	u, err := r.findOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(bson.D{{Key: "password", Value: 1}}))
	if err != nil {
		return "", err
	}
	return u.PasswordHash, nil
}

func (r *MongoRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: hash}}}})
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetFirstName(ctx context.Context, id, firstName string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutHash)
	var doc mongoUser
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "firstName", Value: firstName}}}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update first name: %w", err)
	}
	return doc.toUser(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.D, opts *options.FindOneOptions) (*User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toUser(), nil
}

var _ Repository = (*MongoRepository)(nil)
