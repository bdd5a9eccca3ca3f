package gormstore

import (
	"context"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"gorm.io/gorm"
)

/* ------------------ Account CRUD ------------------ */

func (s *Store) CreateAccount(ctx context.Context, a *models.Account) error {
	return translate(s.DB.WithContext(ctx).Create(toAccountRow(a)).Error)
}

func (s *Store) first(ctx context.Context, query string, args ...any) (*models.Account, error) {
	var r accountRow
	if err := s.DB.WithContext(ctx).Where(query, args...).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return r.toModel(), nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.first(ctx, "email = ?", models.NormalizeEmail(email))
}

func (s *Store) GetAccountByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	return s.first(ctx, "email = ? AND role = ?", models.NormalizeEmail(email), string(role))
}

func (s *Store) updateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	res := s.DB.WithContext(ctx).Model(&accountRow{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetApproved(ctx context.Context, id string, approved bool) (*models.Account, error) {
	if err := s.updateFields(ctx, id, map[string]interface{}{"approved": approved}); err != nil {
		return nil, err
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	return s.updateFields(ctx, id, map[string]interface{}{"active": active})
}

func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.updateFields(ctx, id, map[string]interface{}{"password_hash": hash, "must_reset_password": false})
}

func (s *Store) SetProfilePicture(ctx context.Context, id, key string) error {
	return s.updateFields(ctx, id, map[string]interface{}{"profile_picture_url": key})
}

/* ------------------ Listing ------------------ */

func (s *Store) filtered(ctx context.Context, f store.AccountFilter) *gorm.DB {
	q := s.DB.WithContext(ctx).Model(&accountRow{})
	if len(f.Roles) > 0 {
		roles := make([]string, len(f.Roles))
		for i, r := range f.Roles {
			roles[i] = string(r)
		}
		q = q.Where("role IN ?", roles)
	}
	if f.Approved != nil {
		q = q.Where("approved = ?", *f.Approved)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if f.NGOID != "" {
		q = q.Where("ngo_id = ?", f.NGOID)
	}
	if f.NoPassword {
		q = q.Where("password_hash = ''")
	}
	return q
}

// ListAccounts returns matches newest first.
func (s *Store) ListAccounts(ctx context.Context, f store.AccountFilter) ([]*models.Account, error) {
	var rows []accountRow
	if err := s.filtered(ctx, f).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Account, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}

func (s *Store) CountAccounts(ctx context.Context, f store.AccountFilter) (int64, error) {
	var n int64
	err := s.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (s *Store) MarkMustReset(ctx context.Context, f store.AccountFilter) (int64, error) {
	res := s.filtered(ctx, f).Updates(map[string]interface{}{
		"must_reset_password": true,
		"updated_at":          time.Now(),
	})
	return res.RowsAffected, res.Error
}
