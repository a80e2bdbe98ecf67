package utils

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient is the shared MongoDB client for the process
var MongoClient *mongo.Client

// InitMongoClient initializes the MongoDB client from the environment variables
func InitMongoClient() {
	// Only try to load .env if not in test mode
	if os.Getenv("GO_ENV") != "test" {
		if err := godotenv.Load(); err != nil {
			log.Fatal("Error loading .env file")
		}
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MongoDB URI is not set")
	}

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetMaxPoolSize(GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100)).
		SetMinPoolSize(GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10)).
		SetRetryWrites(GetEnvAsBool("MONGO_RETRY_WRITES", true))

	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	MongoClient = client
}
