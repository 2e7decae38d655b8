package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrEmailTaken is returned when a user with the same email already exists.
var ErrEmailTaken = errors.New("user already exists")

const usersCollection = "users"

type UserRepo struct {
	conn *database.Conn
}

func NewUserRepo(conn *database.Conn) *UserRepo {
	return &UserRepo{conn: conn}
}

func (r *UserRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.conn.Collection(ctx, usersCollection)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. The email check is done by the caller; the
// unique index turns a concurrent duplicate into ErrEmailTaken.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	result, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// CompleteOnboarding stores the profile and sets the completion flag. It
// reports false when no user has the given email.
func (r *UserRepo) CompleteOnboarding(ctx context.Context, email string, profile *models.Profile) (bool, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return false, err
	}

	result, err := coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"profile":             profile,
			"onboardingCompleted": true,
			"updatedAt":           time.Now(),
		},
	})
	if err != nil {
		return false, fmt.Errorf("update onboarding: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	return coll.CountDocuments(ctx, bson.M{})
}

// List returns every user without the password hash.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// EnsureIndexes creates necessary indexes for the users collection
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
