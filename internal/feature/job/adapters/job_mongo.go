package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobtracker_backend/internal/feature/job/domain/entity"
	"jobtracker_backend/internal/feature/job/usecase"
	"jobtracker_backend/internal/platform/mongodb"
)

// jobDocument is the BSON shape stored in the Jobs collection.
type jobDocument struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	PipelineID   string    `bson:"pipelineId"`
	PipelineName string    `bson:"pipelineName"`
	Stage        string    `bson:"stage"`
	Name         string    `bson:"name"`
	Company      string    `bson:"company"`
	Role         string    `bson:"role"`
	Location     string    `bson:"location"`
	Source       string    `bson:"source"`
	Notes        string    `bson:"notes,omitempty"`
	AppliedDate  time.Time `bson:"appliedDate"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toJobDocument(j *entity.JobApplication) jobDocument {
	return jobDocument{
		ID:           j.ID,
		UserID:       j.UserID,
		PipelineID:   j.PipelineID,
		PipelineName: j.PipelineName,
		Stage:        j.Stage,
		Name:         j.Name,
		Company:      j.Company,
		Role:         j.Role,
		Location:     j.Location,
		Source:       j.Source,
		Notes:        j.Notes,
		AppliedDate:  j.AppliedDate,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func (d *jobDocument) toEntity() entity.JobApplication {
	return entity.JobApplication{
		ID:           d.ID,
		UserID:       d.UserID,
		PipelineID:   d.PipelineID,
		PipelineName: d.PipelineName,
		Stage:        d.Stage,
		Name:         d.Name,
		Company:      d.Company,
		Role:         d.Role,
		Location:     d.Location,
		Source:       d.Source,
		Notes:        d.Notes,
		AppliedDate:  d.AppliedDate,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// jobMongo is the MongoDB implementation of JobRepository.
type jobMongo struct {
	coll *mongo.Collection
}

var _ usecase.JobRepository = (*jobMongo)(nil)

// NewJobMongo creates a repository over the Jobs collection of db.
func NewJobMongo(db *mongo.Database) *jobMongo {
	return &jobMongo{coll: db.Collection(mongodb.JobsCollection)}
}

func (r *jobMongo) Find(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	return r.find(ctx, bson.D{{Key: "userId", Value: userID}})
}

func (r *jobMongo) FindByStage(ctx context.Context, userID, stage string) ([]entity.JobApplication, error) {
	return r.find(ctx, bson.D{{Key: "userId", Value: userID}, {Key: "stage", Value: stage}})
}

func (r *jobMongo) find(ctx context.Context, filter bson.D) ([]entity.JobApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.JobApplication, len(docs))
	for i := range docs {
		out[i] = docs[i].toEntity()
	}
	return out, nil
}

func (r *jobMongo) FindOne(ctx context.Context, id, userID string) (*entity.JobApplication, error) {
	var doc jobDocument
	if err := r.coll.FindOne(ctx, ownedBy(id, userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	j := doc.toEntity()
	return &j, nil
}

func (r *jobMongo) Insert(ctx context.Context, job *entity.JobApplication) error {
	_, err := r.coll.InsertOne(ctx, toJobDocument(job))
	return err
}

func (r *jobMongo) Replace(ctx context.Context, job *entity.JobApplication) (bool, error) {
	res, err := r.coll.ReplaceOne(ctx, ownedBy(job.ID, job.UserID), toJobDocument(job))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *jobMongo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, ownedBy(id, userID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ownedBy is the (id, userId) equality filter used by every single-document operation.
func ownedBy(id, userID string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "userId", Value: userID}}
}
