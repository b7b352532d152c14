package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"insurance-chatbot-backend/config"
	apperrors "insurance-chatbot-backend/errors"
	"insurance-chatbot-backend/logger"
	"insurance-chatbot-backend/models"
)

const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"
	claimsCollection       = "claims"
	messagesCollection     = "messages"
)

// MongoRepository stores records in MongoDB, one collection per record type.
type MongoRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger logger.Logger
}

// ConnectMongoDB establishes connection to MongoDB
func ConnectMongoDB(ctx context.Context, cfg *config.Config, log logger.Logger) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.BuildDatabaseURI()).
		SetMaxPoolSize(uint64(cfg.Storage.MaxConnections)).
		SetMinPoolSize(uint64(cfg.Storage.MinConnections)).
		SetMaxConnIdleTime(cfg.Storage.MaxIdleTime)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, apperrors.NewStorageConnectionError(fmt.Errorf("failed to connect to MongoDB: %w", err))
	}

	return newMongoRepository(ctx, client, cfg.Storage.Name, log)
}

// newMongoRepository pings the server and creates indexes. The client is disconnected when
// either step fails, so a failed connect never leaks its connection pool.
func newMongoRepository(ctx context.Context, client *mongo.Client, dbName string, log logger.Logger) (*MongoRepository, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnect(client, log)
		return nil, apperrors.NewStorageConnectionError(fmt.Errorf("failed to ping MongoDB: %w", err))
	}

	repo := &MongoRepository{
		client: client,
		db:     client.Database(dbName),
		logger: log,
	}
	log.Info("Connected to MongoDB", map[string]interface{}{"database": dbName})

	if err := repo.createIndexes(ctx); err != nil {
		disconnect(client, log)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

// disconnect uses its own deadline because the caller's context may already be spent.
func disconnect(client *mongo.Client, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Warn("Failed to disconnect from MongoDB", nil)
	}
}

// createIndexes creates necessary indexes
func (r *MongoRepository) createIndexes(ctx context.Context) error {
	byCollection := map[string][]mongo.IndexModel{
		appointmentsCollection: {
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		claimsCollection: {
			{Keys: bson.D{{Key: "session_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		messagesCollection: {
			{Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "timestamp", Value: 1},
			}},
			{Keys: bson.D{{Key: "entity", Value: 1}, {Key: "intention", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}

	for name, indexes := range byCollection {
		if _, err := r.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	r.logger.Debug("Database indexes created successfully", nil)
	return nil
}

func (r *MongoRepository) insert(ctx context.Context, collection string, doc interface{}) error {
	if _, err := r.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return apperrors.NewStorageWriteError(collection, err)
	}
	return nil
}

func (r *MongoRepository) AddUser(ctx context.Context, user *models.User) error {
	return r.insert(ctx, usersCollection, user)
}

func (r *MongoRepository) AddAppointment(ctx context.Context, appointment *models.Appointment) error {
	return r.insert(ctx, appointmentsCollection, appointment)
}

func (r *MongoRepository) AddClaim(ctx context.Context, claim *models.Claim) error {
	return r.insert(ctx, claimsCollection, claim)
}

func (r *MongoRepository) AddMessage(ctx context.Context, message *models.Message) error {
	return r.insert(ctx, messagesCollection, message)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, sortKey string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: 1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func (r *MongoRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.db.Collection(usersCollection), bson.M{}, "created_at")
}

func (r *MongoRepository) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return findAll[models.Appointment](ctx, r.db.Collection(appointmentsCollection), bson.M{}, "created_at")
}

func (r *MongoRepository) ListClaims(ctx context.Context) ([]models.Claim, error) {
	return findAll[models.Claim](ctx, r.db.Collection(claimsCollection), bson.M{}, "created_at")
}

func (r *MongoRepository) ListMessages(ctx context.Context, sessionID string) ([]models.Message, error) {
	filter := bson.M{}
	if sessionID != "" {
		filter["session_id"] = sessionID
	}
	return findAll[models.Message](ctx, r.db.Collection(messagesCollection), filter, "timestamp")
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// Close closes the MongoDB connection
func (r *MongoRepository) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	r.logger.Info("Disconnected from MongoDB", nil)
	return nil
}
