package utils

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is a global variable holding the MongoDB client
var MongoClient *mongo.Client

// InitMongoClient initializes the MongoDB client from the environment variables
func InitMongoClient() {
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

	if err := client.Ping(context.Background(), readpref.Primary()); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	MongoClient = client
}
