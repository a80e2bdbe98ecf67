package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalsRepo struct {
	MongoCollection *mongo.Collection
}

// GetGoalsRepo retrieves the MongoDB collection for goals
func GetGoalsRepo(client *mongo.Client) *GoalsRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("GOALS_COLLECTION")
	return &GoalsRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// CreateGoal inserts a new goal document
func (r *GoalsRepo) CreateGoal(ctx context.Context, goal *model.Goal) error {
	timer := utils.TrackDBOperation("insert", "goals")
	defer timer.ObserveDuration()

	if goal.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, goal)
	if err != nil {
		utils.TrackError("database", "goal_creation_failed")
		return err
	}

	utils.TrackGoalOperation("create")
	return nil
}

// GetUserGoals retrieves all goals owned by the user
func (r *GoalsRepo) GetUserGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	timer := utils.TrackDBOperation("find", "goals")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "goal_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []*model.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		utils.TrackError("database", "goal_decode_failed")
		return nil, err
	}
	return goals, nil
}

// FindGoal loads a single goal scoped to its owner
func (r *GoalsRepo) FindGoal(ctx context.Context, goalID, userID string) (*model.Goal, error) {
	timer := utils.TrackDBOperation("find", "goals")
	defer timer.ObserveDuration()

	var goal model.Goal
	err := r.MongoCollection.FindOne(ctx, bson.M{
		"_id":     goalID,
		"user_id": userID,
	}).Decode(&goal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "goal_not_found")
			return nil, ErrGoalNotFound
		}
		utils.TrackError("database", "goal_lookup_error")
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal overwrites the user-editable fields of a goal
func (r *GoalsRepo) UpdateGoal(ctx context.Context, goalID, userID string, updates *model.Goal) error {
	timer := utils.TrackDBOperation("update", "goals")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     goalID,
		"user_id": userID,
	}
	update := bson.M{
		"$set": bson.M{
			"title":       updates.Title,
			"description": updates.Description,
			"category":    updates.Category,
			"due_date":    updates.DueDate,
			"progress":    updates.Progress,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "goal_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "goal_not_found")
		return ErrGoalNotFound
	}

	utils.TrackGoalOperation("update")
	return nil
}

// SaveDerivedState persists the aggregate fields maintained by check-in and
// milestone mutations in a single $set, keeping the goal document the
// transactional unit. Two racing writers both match the filter and the
// second write wins; that last-write-wins behavior is a known gap, not a
// guarantee.
func (r *GoalsRepo) SaveDerivedState(ctx context.Context, goal *model.Goal) error {
	timer := utils.TrackDBOperation("update", "goals")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     goal.GoalID,
		"user_id": goal.UserID,
	}
	update := bson.M{
		"$set": bson.M{
			"checkin_history":   goal.CheckinHistory,
			"milestones":        goal.Milestones,
			"current_streak":    goal.CurrentStreak,
			"last_checkin_date": goal.LastCheckinDate,
			"progress":          goal.Progress,
			"updated_at":        goal.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "goal_state_save_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "goal_not_found")
		return ErrGoalNotFound
	}
	return nil
}

// DeleteGoal removes the whole goal document (no soft delete)
func (r *GoalsRepo) DeleteGoal(ctx context.Context, goalID, userID string) error {
	timer := utils.TrackDBOperation("delete", "goals")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{
		"_id":     goalID,
		"user_id": userID,
	})
	if err != nil {
		utils.TrackError("database", "goal_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "goal_not_found")
		return ErrGoalNotFound
	}

	utils.TrackGoalOperation("delete")
	return nil
}

// CountUserGoals counts all goals owned by the user
func (r *GoalsRepo) CountUserGoals(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "goals")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "goal_count_failed")
		return 0, err
	}
	return int(count), nil
}

// SetupGoalIndexes creates the owner-scoped indexes the dashboard queries rely on
func SetupGoalIndexes(db *mongo.Database) error {
	collection := db.Collection(os.Getenv("GOALS_COLLECTION"))

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "updated_at", Value: -1},
			},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := collection.Indexes().CreateMany(ctx, indexes, options.CreateIndexes())
	return err
}
