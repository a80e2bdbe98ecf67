package repository

import (
	"context"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AchievementsRepo stores one unlocked-badge document per user.
type AchievementsRepo struct {
	MongoCollection *mongo.Collection
}

func GetAchievementsRepo(client *mongo.Client) *AchievementsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("ACHIEVEMENTS_COLLECTION")
	return &AchievementsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Load returns the user's achievement state, or an empty state when none
// has been saved yet
func (r *AchievementsRepo) Load(ctx context.Context, userID string) (*model.UserAchievements, error) {
	timer := utils.TrackDBOperation("find", "achievements")
	defer timer.ObserveDuration()

	var state model.UserAchievements
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&state)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &model.UserAchievements{UserID: userID}, nil
		}
		utils.TrackError("database", "achievements_lookup_error")
		return nil, err
	}
	return &state, nil
}

// Save upserts the user's achievement state
func (r *AchievementsRepo) Save(ctx context.Context, state *model.UserAchievements) error {
	timer := utils.TrackDBOperation("update", "achievements")
	defer timer.ObserveDuration()

	state.UpdatedAt = time.Now()
	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": state.UserID},
		bson.M{"$set": bson.M{
			"unlocked":   state.Unlocked,
			"updated_at": state.UpdatedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		utils.TrackError("database", "achievements_save_failed")
	}
	return err
}
