package gormstore

import (
	"context"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
)

func (s *Store) CreateProject(ctx context.Context, p *models.Project) error {
	return s.DB.WithContext(ctx).Create(toProjectRow(p)).Error
}

func (s *Store) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	var r projectRow
	if err := s.DB.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return r.toModel(), nil
}

func (s *Store) ListProjectsByNGO(ctx context.Context, ngoID string) ([]*models.Project, error) {
	var rows []projectRow
	if err := s.DB.WithContext(ctx).Where("ngo_id = ?", ngoID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Project, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

// SaveProject overwrites every column of an existing row.
func (s *Store) SaveProject(ctx context.Context, p *models.Project) error {
	res := s.DB.WithContext(ctx).Model(&projectRow{}).Where("id = ?", p.ID).Select("*").Updates(toProjectRow(p))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&projectRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	if err := s.DB.WithContext(ctx).Model(&projectRow{}).Select("status, count(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.ProjectStatus]int64, len(rows))
	for _, r := range rows {
		out[models.ProjectStatus(r.Status)] = r.N
	}
	return out, nil
}
