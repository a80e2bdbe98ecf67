package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := os.Getenv("USERS_COLLECTION")
	return &UserRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) (interface{}, error) {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Username == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return nil, errors.New("username and password required")
	}

	result, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		utils.TrackError("database", "user_creation_failed")
		return nil, errors.New("failed to add user to database")
	}

	return result.InsertedID, nil
}

// FindUserByUsername returns nil without error when no user matches
func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}
	return &user, nil
}

// FindUser returns nil without error when no user matches
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "user_not_found")
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) (int64, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	if hashedPassword == "" {
		utils.TrackError("database", "invalid_password_hash")
		return 0, fmt.Errorf("password hashing error")
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"password":             hashedPassword,
			"last_password_change": time.Now(),
		}},
	)
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *UserRepo) UpdateUserEmail(ctx context.Context, userID, email string) (int64, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"email":             email,
			"last_email_change": time.Now(),
		}},
	)
	if err != nil {
		utils.TrackError("database", "email_update_failed")
		return 0, err
	}
	return result.ModifiedCount, nil
}

// Enable2FAWithRecoveryCodes stores the TOTP secret and hashed recovery codes
func (r *UserRepo) Enable2FAWithRecoveryCodes(ctx context.Context, userID, secret string, hashedCodes []string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": true,
			"recovery_codes":     hashedCodes,
		}},
	)
	if err != nil {
		utils.TrackError("database", "2fa_enable_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UserRepo) Disable2FA(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":   bson.M{"two_factor_enabled": false},
			"$unset": bson.M{"two_factor_secret": "", "recovery_codes": ""},
		},
	)
	if err != nil {
		utils.TrackError("database", "2fa_disable_failed")
	}
	return err
}

// ConsumeRecoveryCode removes a used recovery code (stored hashed)
func (r *UserRepo) ConsumeRecoveryCode(ctx context.Context, userID, hashedCode string) (bool, error) {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID, "recovery_codes": hashedCode},
		bson.M{"$pull": bson.M{"recovery_codes": hashedCode}},
	)
	if err != nil {
		utils.TrackError("database", "recovery_code_consume_failed")
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *UserRepo) DeleteUser(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "user_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}
