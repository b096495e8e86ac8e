package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobtracker_backend/internal/feature/pipeline/domain/entity"
	"jobtracker_backend/internal/feature/pipeline/usecase"
	"jobtracker_backend/internal/platform/mongodb"
)

// pipelineDocument is the BSON shape stored in the Pipelines collection.
type pipelineDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Name      string    `bson:"name"`
	Stages    []string  `bson:"stages"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toPipelineDocument(p *entity.Pipeline) pipelineDocument {
	return pipelineDocument{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		Stages:    p.Stages,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d *pipelineDocument) toEntity() *entity.Pipeline {
	return &entity.Pipeline{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Stages:    d.Stages,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ownedBy is the (id, userId) equality filter used by every single-document operation.
func ownedBy(id, userID string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "userId", Value: userID}}
}

// pipelineMongo is the MongoDB implementation of PipelineRepository.
type pipelineMongo struct {
	coll *mongo.Collection
}

var _ usecase.PipelineRepository = (*pipelineMongo)(nil)

// NewPipelineMongo creates a repository over the Pipelines collection of db.
func NewPipelineMongo(db *mongo.Database) *pipelineMongo {
	return &pipelineMongo{coll: db.Collection(mongodb.PipelinesCollection)}
}

func (r *pipelineMongo) Find(ctx context.Context, userID string) ([]entity.Pipeline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{{Key: "userId", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	var docs []pipelineDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Pipeline, len(docs))
	for i := range docs {
		out[i] = *docs[i].toEntity()
	}
	return out, nil
}

func (r *pipelineMongo) FindOne(ctx context.Context, id, userID string) (*entity.Pipeline, error) {
	var doc pipelineDocument
	if err := r.coll.FindOne(ctx, ownedBy(id, userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrPipelineNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *pipelineMongo) Insert(ctx context.Context, p *entity.Pipeline) error {
	_, err := r.coll.InsertOne(ctx, toPipelineDocument(p))
	return err
}

func (r *pipelineMongo) Replace(ctx context.Context, p *entity.Pipeline) (bool, error) {
	res, err := r.coll.ReplaceOne(ctx, ownedBy(p.ID, p.UserID), toPipelineDocument(p))
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *pipelineMongo) Delete(ctx context.Context, id, userID string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, ownedBy(id, userID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
