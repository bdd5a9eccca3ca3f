package mongostore

import (
	"context"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateAccount(ctx context.Context, a *models.Account) error {
	if _, err := s.accounts.InsertOne(ctx, toAccountDoc(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	var d accountDoc
	if err := s.accounts.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, notFound(err)
	}
	return d.toModel(), nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetAccountByEmail is a single lookup on the unique email index.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (s *Store) GetAccountByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	return s.findOne(ctx, bson.M{"email": models.NormalizeEmail(email), "role": string(role)})
}

func (s *Store) SetApproved(ctx context.Context, id string, approved bool) (*models.Account, error) {
	var d accountDoc
	err := s.accounts.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_approved": approved, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return nil, notFound(err)
	}
	return d.toModel(), nil
}

func (s *Store) updateFields(ctx context.Context, id string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := s.accounts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) SetActive(ctx context.Context, id string, active bool) error {
	return s.updateFields(ctx, id, bson.M{"is_active": active})
}

// UpdatePassword also clears a pending forced reset.
func (s *Store) UpdatePassword(ctx context.Context, id, hash string) error {
	return s.updateFields(ctx, id, bson.M{"password_hash": hash, "must_reset_password": false})
}

func (s *Store) SetProfilePicture(ctx context.Context, id, key string) error {
	return s.updateFields(ctx, id, bson.M{"profile_picture_url": key})
}

func accountFilter(f store.AccountFilter) bson.M {
	q := bson.M{}
	if len(f.Roles) > 0 {
		roles := make([]string, len(f.Roles))
		for i, r := range f.Roles {
			roles[i] = string(r)
		}
		q["role"] = bson.M{"$in": roles}
	}
	if f.Approved != nil {
		q["is_approved"] = *f.Approved
	}
	if f.Active != nil {
		q["is_active"] = *f.Active
	}
	if f.NGOID != "" {
		q["volunteer.ngo_id"] = f.NGOID
	}
	if f.NoPassword {
		q["$or"] = bson.A{
			bson.M{"password_hash": bson.M{"$exists": false}},
			bson.M{"password_hash": ""},
		}
	}
	return q
}

// ListAccounts returns matches newest first.
func (s *Store) ListAccounts(ctx context.Context, f store.AccountFilter) ([]*models.Account, error) {
	cur, err := s.accounts.Find(ctx, accountFilter(f), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Account
	for cur.Next(ctx) {
		var d accountDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (s *Store) CountAccounts(ctx context.Context, f store.AccountFilter) (int64, error) {
	return s.accounts.CountDocuments(ctx, accountFilter(f))
}

func (s *Store) MarkMustReset(ctx context.Context, f store.AccountFilter) (int64, error) {
	res, err := s.accounts.UpdateMany(ctx, accountFilter(f), bson.M{"$set": bson.M{
		"must_reset_password": true,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
