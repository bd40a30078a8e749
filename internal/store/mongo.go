package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"yatav-backend/internal/models"
)

// Collection names.
const (
	colUsers      = "users"
	colCharacters = "characters"
	colSessions   = "sessions"
	colMessages   = "messages"
)

// Connect opens a Mongo client and verifies connectivity.
func Connect(ctx context.Context, url, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the query paths rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	type spec struct {
		col    string
		models []mongo.IndexModel
	}
	specs := []spec{
		{colUsers, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
		}},
		{colSessions, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		}},
		{colMessages, []mongo.IndexModel{
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		}},
		{colCharacters, []mongo.IndexModel{
			{Keys: bson.D{{Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "difficulty", Value: 1}}},
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.col).Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", s.col, err)
		}
	}
	log.Printf("Database indexes created")
	return nil
}

// Mongo bundles the collection-backed stores.
type Mongo struct {
	Users      *MongoUserStore
	Characters *MongoCharacterStore
	Sessions   *MongoSessionStore
	Messages   *MongoMessageStore
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{
		Users:      &MongoUserStore{col: db.Collection(colUsers)},
		Characters: &MongoCharacterStore{col: db.Collection(colCharacters)},
		Sessions:   &MongoSessionStore{col: db.Collection(colSessions)},
		Messages:   &MongoMessageStore{col: db.Collection(colMessages)},
	}
}

type MongoUserStore struct {
	col *mongo.Collection
}

func (s *MongoUserStore) Insert(ctx context.Context, u *models.User) error {
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

func (s *MongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

func (s *MongoUserStore) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

type MongoCharacterStore struct {
	col *mongo.Collection
}

func (s *MongoCharacterStore) Insert(ctx context.Context, ch *models.Character) error {
	if _, err := s.col.InsertOne(ctx, ch); err != nil {
		return fmt.Errorf("failed to insert character: %w", err)
	}
	return nil
}

func (s *MongoCharacterStore) ListActive(ctx context.Context) ([]models.Character, error) {
	cur, err := s.col.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	var out []models.Character
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode characters: %w", err)
	}
	return out, nil
}

func (s *MongoCharacterStore) FindActive(ctx context.Context, id string) (*models.Character, error) {
	return s.findOne(ctx, bson.M{"id": id, "is_active": true})
}

func (s *MongoCharacterStore) Find(ctx context.Context, id string) (*models.Character, error) {
	return s.findOne(ctx, bson.M{"id": id})
}

func (s *MongoCharacterStore) findOne(ctx context.Context, filter bson.M) (*models.Character, error) {
	var ch models.Character
	err := s.col.FindOne(ctx, filter).Decode(&ch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find character: %w", err)
	}
	return &ch, nil
}

type MongoSessionStore struct {
	col *mongo.Collection
}

func (s *MongoSessionStore) Insert(ctx context.Context, sess *models.Session) error {
	if _, err := s.col.InsertOne(ctx, sess); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) ListByUser(ctx context.Context, userID string) ([]models.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	var out []models.Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out, nil
}

func (s *MongoSessionStore) FindForUser(ctx context.Context, id, userID string) (*models.Session, error) {
	var sess models.Session
	err := s.col.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &sess, nil
}

func (s *MongoSessionStore) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"updated_at": at}})
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) CloseStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"status": models.SessionActive, "updated_at": bson.M{"$lt": cutoff}},
		bson.M{"$set": bson.M{"status": models.SessionCompleted, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to close stale sessions: %w", err)
	}
	return res.ModifiedCount, nil
}

func (s *MongoSessionStore) CreatedBetween(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	cur, err := s.col.Find(ctx, bson.M{"created_at": bson.M{"$gte": from, "$lt": to}})
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	var out []models.Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return out, nil
}

type MongoMessageStore struct {
	col *mongo.Collection
}

func (s *MongoMessageStore) Insert(ctx context.Context, m *models.ChatMessage) error {
	if _, err := s.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (s *MongoMessageStore) RecentBySession(ctx context.Context, sessionID string, limit int64) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cur, err := s.col.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	// Newest-first from the query, chronological for the caller
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *MongoMessageStore) Between(ctx context.Context, from, to time.Time) ([]models.ChatMessage, error) {
	cur, err := s.col.Find(ctx, bson.M{"timestamp": bson.M{"$gte": from, "$lt": to}})
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return out, nil
}
