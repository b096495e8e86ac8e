package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"jobtracker_backend/internal/feature/auth/domain/entity"
	"jobtracker_backend/internal/feature/auth/usecase"
	"jobtracker_backend/internal/platform/mongodb"
)

// userDocument is the BSON shape stored in the Users collection.
type userDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// userMongo is the MongoDB implementation of UserRepository.
type userMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo creates a repository over the Users collection of db.
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(mongodb.UsersCollection), now: time.Now}
}

// Create inserts the user. The unique indexes on email and username reject duplicates.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	now := r.now().UTC()
	doc := userDocument{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrDuplicateUser
		}
		return err
	}
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound when no document matches.
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByUsername returns usecase.ErrUserNotFound when no document matches.
func (r *userMongo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *userMongo) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
