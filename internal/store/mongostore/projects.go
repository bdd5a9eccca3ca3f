package mongostore

import (
	"context"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := s.projects.InsertOne(ctx, toProjectDoc(p))
	return err
}

func (s *Store) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	var d projectDoc
	if err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, notFound(err)
	}
	return d.toModel(), nil
}

func (s *Store) ListProjectsByNGO(ctx context.Context, ngoID string) ([]*models.Project, error) {
	cur, err := s.projects.Find(ctx, bson.M{"ngo_id": ngoID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Project
	for cur.Next(ctx) {
		var d projectDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

// SaveProject replaces the stored document.
func (s *Store) SaveProject(ctx context.Context, p *models.Project) error {
	res, err := s.projects.ReplaceOne(ctx, bson.M{"_id": p.ID}, toProjectDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error) {
	cur, err := s.projects.Aggregate(ctx, bson.A{
		bson.M{"$group": bson.M{"_id": "$status", "n": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[models.ProjectStatus]int64{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[models.ProjectStatus(row.Status)] = row.N
	}
	return out, cur.Err()
}
