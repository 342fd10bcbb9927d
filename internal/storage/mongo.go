package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"sira/backend/internal/apperr"
	"sira/backend/internal/models"
)

// Назви колекцій.
const (
	colUsers   = "users"
	colReports = "reports"
)

// Service implements Storage on MongoDB, with an optional Redis client
// used only as a cache for the admin report listing.
type Service struct {
	DB    *mongo.Database
	Redis *redis.Client

	client *mongo.Client
}

// NewService connects to MongoDB, verifies the connection and ensures
// indexes. rdb may be nil; the listing cache is then disabled.
func NewService(uri, dbName string, rdb *redis.Client) (*Service, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	s := &Service{
		DB:     client.Database(dbName),
		Redis:  rdb,
		client: client,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		log.Printf("WARN: ensure indexes failed: %v", err)
	}
	return s, nil
}

// Close disconnects the MongoDB client.
func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// ensureIndexes створює індекси; unique email забезпечує ConflictError
// при повторній реєстрації.
func (s *Service) ensureIndexes(ctx context.Context) error {
	_, err := s.DB.Collection(colUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = s.DB.Collection(colReports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

// wrapError converts driver errors into the shared taxonomy.
func wrapError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound(notFoundMsg)
	}
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("email already exists")
	}
	return err
}

// ----------------------------------------------------------------------------
// Users
// ----------------------------------------------------------------------------

func (s *Service) SaveUser(ctx context.Context, user *models.User) error {
	_, err := s.DB.Collection(colUsers).InsertOne(ctx, user)
	return wrapError(err, "user not found")
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection(colUsers).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		return nil, wrapError(err, "user not found")
	}
	return &user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.DB.Collection(colUsers).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		return nil, wrapError(err, "user not found")
	}
	return &user, nil
}

func (s *Service) UpdateUserFields(ctx context.Context, id string, patch map[string]interface{}) error {
	patch["updated_at"] = time.Now()
	res, err := s.DB.Collection(colUsers).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: patch}},
	)
	if err != nil {
		return wrapError(err, "user not found")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.DB.Collection(colUsers).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) DeleteAllUsers(ctx context.Context) (int64, error) {
	res, err := s.DB.Collection(colUsers).DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ----------------------------------------------------------------------------
// Reports
// ----------------------------------------------------------------------------

func (s *Service) SaveReport(ctx context.Context, report *models.Report) error {
	_, err := s.DB.Collection(colReports).InsertOne(ctx, report)
	if err != nil {
		return wrapError(err, "report not found")
	}
	s.invalidateReportCache(ctx)
	return nil
}

func (s *Service) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	var report models.Report
	err := s.DB.Collection(colReports).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&report)
	if err != nil {
		return nil, wrapError(err, "report not found")
	}
	return &report, nil
}

func (s *Service) GetReportsByUser(ctx context.Context, userID string) ([]models.Report, error) {
	return s.findReports(ctx, bson.D{{Key: "user_id", Value: userID}})
}

func (s *Service) UpdateReportFields(ctx context.Context, id string, patch map[string]interface{}) error {
	patch["updated_at"] = time.Now()
	res, err := s.DB.Collection(colReports).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: patch}},
	)
	if err != nil {
		return wrapError(err, "report not found")
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("report not found")
	}
	s.invalidateReportCache(ctx)
	return nil
}

func (s *Service) DeleteReport(ctx context.Context, id string) error {
	res, err := s.DB.Collection(colReports).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return wrapError(err, "report not found")
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("report not found")
	}
	s.invalidateReportCache(ctx)
	return nil
}

func (s *Service) findReports(ctx context.Context, filter bson.D) ([]models.Report, error) {
	cursor, err := s.DB.Collection(colReports).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
