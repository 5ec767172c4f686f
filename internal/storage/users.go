// users.go - User accounts, profiles and server-side session tokens.

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// User is an account record. PasswordHash is a bcrypt hash, never the
// plain password.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Name         string    `bson:"name" json:"name"`
	FarmName     string    `bson:"farm_name" json:"farmName"`
	Location     string    `bson:"location" json:"location"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// AuthSession maps an opaque bearer token to a user id.
type AuthSession struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// CreateUser inserts a new account. Email uniqueness is checked first, not
// enforced by an index, which is acceptable for a single-writer dashboard.
func CreateUser(user *User) error {
	ctx, cancel := queryContext()
	defer cancel()

	collection := mongoDB.Collection("users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return fmt.Errorf("failed to check existing email: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("an account with email %s already exists", user.Email)
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()

	if _, err := collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches an account by email.
func GetUserByEmail(email string) (*User, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var user User
	err := mongoDB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no account found for %s", email)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// GetUserByID fetches an account by id.
func GetUserByID(userID string) (*User, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var user User
	err := mongoDB.Collection("users").FindOne(ctx, bson.M{"id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found: %s", userID)
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the mutable profile fields of an account.
func UpdateProfile(userID string, name, farmName, location string) error {
	ctx, cancel := queryContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      name,
		"farm_name": farmName,
		"location":  location,
	}}

	result, err := mongoDB.Collection("users").UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// CreateAuthSession issues a new opaque token for a user.
func CreateAuthSession(userID string) (*AuthSession, error) {
	ctx, cancel := queryContext()
	defer cancel()

	session := &AuthSession{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if _, err := mongoDB.Collection("auth_sessions").InsertOne(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetAuthSession resolves a bearer token to its session record.
func GetAuthSession(token string) (*AuthSession, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var session AuthSession
	err := mongoDB.Collection("auth_sessions").FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invalid or expired token")
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return &session, nil
}
