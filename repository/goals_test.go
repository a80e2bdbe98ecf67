package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"main/model"
	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// goalsTestRepo connects to the MongoDB named by MONGO_URI and returns a repo
// over a throwaway collection. Tests are skipped when no database is
// available.
func goalsTestRepo(t *testing.T) (*GoalsRepo, func()) {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping database tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("MongoDB not reachable: %v", err)
	}

	collection := client.Database("leapai_test").Collection("goals_" + uuid.NewString())
	repo := &GoalsRepo{MongoCollection: collection}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		collection.Drop(ctx)
		client.Disconnect(ctx)
	}
	return repo, cleanup
}

func testGoal(userID string) *model.Goal {
	now := time.Now()
	return &model.Goal{
		GoalID:    utils.GenerateID(),
		UserID:    userID,
		Title:     "Morning run",
		Category:  model.CategoryHealth,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGoalCRUDRoundTrip(t *testing.T) {
	repo, cleanup := goalsTestRepo(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.NewString()
	goal := testGoal(userID)

	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	found, err := repo.FindGoal(ctx, goal.GoalID, userID)
	if err != nil {
		t.Fatalf("FindGoal() error = %v", err)
	}
	if found.Title != goal.Title {
		t.Errorf("title = %q, want %q", found.Title, goal.Title)
	}

	goal.Title = "Evening run"
	if err := repo.UpdateGoal(ctx, goal.GoalID, userID, goal); err != nil {
		t.Fatalf("UpdateGoal() error = %v", err)
	}
	found, err = repo.FindGoal(ctx, goal.GoalID, userID)
	if err != nil {
		t.Fatalf("FindGoal() after update error = %v", err)
	}
	if found.Title != "Evening run" {
		t.Errorf("title after update = %q", found.Title)
	}

	if err := repo.DeleteGoal(ctx, goal.GoalID, userID); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	if _, err := repo.FindGoal(ctx, goal.GoalID, userID); err != ErrGoalNotFound {
		t.Errorf("FindGoal() after delete error = %v, want ErrGoalNotFound", err)
	}
}

func TestGoalOwnerScoping(t *testing.T) {
	repo, cleanup := goalsTestRepo(t)
	defer cleanup()

	ctx := context.Background()
	owner := uuid.NewString()
	intruder := uuid.NewString()
	goal := testGoal(owner)

	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	if _, err := repo.FindGoal(ctx, goal.GoalID, intruder); err != ErrGoalNotFound {
		t.Errorf("foreign FindGoal() error = %v, want ErrGoalNotFound", err)
	}
	if err := repo.DeleteGoal(ctx, goal.GoalID, intruder); err != ErrGoalNotFound {
		t.Errorf("foreign DeleteGoal() error = %v, want ErrGoalNotFound", err)
	}

	goals, err := repo.GetUserGoals(ctx, intruder)
	if err != nil {
		t.Fatalf("GetUserGoals() error = %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("intruder sees %d goals, want 0", len(goals))
	}
}

func TestSaveDerivedState(t *testing.T) {
	repo, cleanup := goalsTestRepo(t)
	defer cleanup()

	ctx := context.Background()
	userID := uuid.NewString()
	goal := testGoal(userID)

	if err := repo.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goal.CurrentStreak = 3
	goal.LastCheckinDate = "2024-06-15"
	goal.Progress = 50
	goal.CheckinHistory = []model.CheckinEntry{
		{CheckinID: utils.GenerateID(), Date: "2024-06-15", CreatedAt: time.Now()},
	}
	goal.UpdatedAt = time.Now()

	if err := repo.SaveDerivedState(ctx, goal); err != nil {
		t.Fatalf("SaveDerivedState() error = %v", err)
	}

	found, err := repo.FindGoal(ctx, goal.GoalID, userID)
	if err != nil {
		t.Fatalf("FindGoal() error = %v", err)
	}
	if found.CurrentStreak != 3 || found.LastCheckinDate != "2024-06-15" || found.Progress != 50 {
		t.Errorf("derived state not persisted: %+v", found)
	}
	if len(found.CheckinHistory) != 1 {
		t.Errorf("check-in history length = %d, want 1", len(found.CheckinHistory))
	}
}

func TestSaveDerivedStateMissingGoal(t *testing.T) {
	repo, cleanup := goalsTestRepo(t)
	defer cleanup()

	goal := testGoal(uuid.NewString())
	if err := repo.SaveDerivedState(context.Background(), goal); err != ErrGoalNotFound {
		t.Errorf("SaveDerivedState() error = %v, want ErrGoalNotFound", err)
	}
}
