package repository

import (
	"context"
	"errors"
	"time"

	"eduorb-backend/internal/database"
	"eduorb-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const sessionsCollection = "sessions"

type SessionRepo struct {
	conn *database.Conn
}

func NewSessionRepo(conn *database.Conn) *SessionRepo {
	return &SessionRepo{conn: conn}
}

func (r *SessionRepo) Create(ctx context.Context, session *models.Session) error {
	coll, err := r.conn.Collection(ctx, sessionsCollection)
	if err != nil {
		return err
	}

	session.CreatedAt = time.Now()
	result, err := coll.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	session.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *SessionRepo) FindByTokenID(ctx context.Context, tokenID string) (*models.Session, error) {
	coll, err := r.conn.Collection(ctx, sessionsCollection)
	if err != nil {
		return nil, err
	}

	var session models.Session
	err = coll.FindOne(ctx, bson.M{"tokenId": tokenID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) Revoke(ctx context.Context, tokenID string) error {
	coll, err := r.conn.Collection(ctx, sessionsCollection)
	if err != nil {
		return err
	}
	_, err = coll.UpdateOne(ctx, bson.M{"tokenId": tokenID}, bson.M{
		"$set": bson.M{"revoked": true},
	})
	return err
}

// EnsureIndexes creates necessary indexes for the sessions collection
func (r *SessionRepo) EnsureIndexes(ctx context.Context) error {
	coll, err := r.conn.Collection(ctx, sessionsCollection)
	if err != nil {
		return err
	}
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tokenId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0), // TTL index, Mongo drops expired sessions
		},
	}
	_, err = coll.Indexes().CreateMany(ctx, indexes)
	return err
}
