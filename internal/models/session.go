package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Session records one issued login token so it can be revoked before expiry.
type Session struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	TokenID   string        `bson:"tokenId" json:"tokenId"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Email     string        `bson:"email" json:"email"`
	ExpiresAt time.Time     `bson:"expiresAt" json:"expiresAt"`
	Revoked   bool          `bson:"revoked" json:"revoked"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active() bool {
	return !s.Revoked && !s.IsExpired()
}
