package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/model"
	"main/services"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("SESSIONS_COLLECTION")
	return &SessionRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *SessionRepo) CreateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil {
		utils.TrackError("database", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}
	if session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: Failed to cache session: %v", err)
		}
	}
	return nil
}

func (r *SessionRepo) GetSession(sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	if services.GlobalSessionCache != nil {
		if session, err := services.GlobalSessionCache.GetSession(sessionID); err == nil && session != nil {
			utils.TrackCacheOperation("session", true)
			return session, nil
		}
		utils.TrackCacheOperation("session", false)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "session_not_found")
			return nil, fmt.Errorf("session not found")
		}
		utils.TrackError("database", "session_lookup_error")
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) UpdateSession(session *model.Session) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": session.SessionID},
		bson.M{"$set": bson.M{
			"last_activity_at": session.LastActivityAt,
			"is_active":        session.IsActive,
		}},
	)
	if err != nil {
		utils.TrackError("database", "session_update_failed")
		return err
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.SetSession(session); err != nil {
			log.Printf("Warning: Failed to refresh cached session: %v", err)
		}
	}
	return nil
}

func (r *SessionRepo) DeleteSession(sessionID string) error {
	timer := utils.TrackDBOperation("delete", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.MongoCollection.DeleteOne(ctx, bson.M{"session_id": sessionID}); err != nil {
		utils.TrackError("database", "session_deletion_failed")
		return err
	}

	if services.GlobalSessionCache != nil {
		if err := services.GlobalSessionCache.DeleteSession(sessionID); err != nil {
			log.Printf("Warning: Failed to drop cached session: %v", err)
		}
	}
	return nil
}

func (r *SessionRepo) GetActiveSessions(userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "is_active": true},
		options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}}),
	)
	if err != nil {
		utils.TrackError("database", "session_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		utils.TrackError("database", "session_decode_failed")
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepo) CountActiveSessions(userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "is_active": true})
	if err != nil {
		utils.TrackError("database", "session_count_failed")
		return 0, err
	}
	return int(count), nil
}

// EndLeastActiveSession deactivates the session with the oldest activity,
// used when the per-user session limit is hit
func (r *SessionRepo) EndLeastActiveSession(userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "is_active": true},
		options.FindOne().SetSort(bson.D{{Key: "last_activity_at", Value: 1}}),
	).Decode(&session)
	if err != nil {
		return fmt.Errorf("failed to find least active session: %w", err)
	}

	session.IsActive = false
	return r.UpdateSession(&session)
}

// EndAllUserSessions deactivates every active session for the user
func (r *SessionRepo) EndAllUserSessions(userID string) (int, error) {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		utils.TrackError("database", "session_bulk_end_failed")
		return 0, err
	}
	return int(result.ModifiedCount), nil
}
