package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/user-accounts/internal/core/domain"
	"github.com/99minutos/user-accounts/internal/core/ports"
)

const collectionUserRoles = "user_roles"

var _ ports.UserRoleRepository = (*UserRoleRepository)(nil)

// UserRoleRepository stores one document per (user, role) membership.
type UserRoleRepository struct {
	col *mongo.Collection
}

func NewUserRoleRepository(db *mongo.Database) *UserRoleRepository {
	return &UserRoleRepository{col: db.Collection(collectionUserRoles)}
}

type userRoleDocument struct {
	UserID   string `bson:"user_id"`
	RoleName string `bson:"role_name"`
}

func (r *UserRoleRepository) FindByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.UserRole, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}
	return r.find(ctx, bson.M{"user_id": bson.M{"$in": ids}})
}

func (r *UserRoleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.UserRole, error) {
	return r.find(ctx, bson.M{"user_id": userID.String()})
}

func (r *UserRoleRepository) find(ctx context.Context, filter bson.M) ([]domain.UserRole, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "role_name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find user roles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []userRoleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode user roles: %w", err)
	}

	roles := make([]domain.UserRole, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.UserID)
		if err != nil {
			return nil, fmt.Errorf("decode user role %q: %w", d.UserID, err)
		}
		roles = append(roles, domain.UserRole{UserRef: domain.UserRef{ID: id}, RoleName: d.RoleName})
	}
	return roles, nil
}

// Add upserts the membership so repeated grants leave a single document.
func (r *UserRoleRepository) Add(ctx context.Context, role domain.UserRole) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userRoleDocument{UserID: role.ID.String(), RoleName: role.RoleName}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user_id": doc.UserID, "role_name": doc.RoleName},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("add user role: %w", err)
	}
	return nil
}

func (r *UserRoleRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID.String()}); err != nil {
		return fmt.Errorf("delete user roles: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique (user_id, role_name) index.
func (r *UserRoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "role_name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
