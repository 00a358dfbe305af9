package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"

	"gorm.io/gorm"
)

// ShopScope is the set of real shop ids a viewer may see. All is set for admins.
type ShopScope struct {
	All   bool
	Shops map[string]struct{}
}

// Allows reports whether the scope contains shopID
func (s ShopScope) Allows(shopID string) bool {
	if s.All {
		return true
	}
	_, ok := s.Shops[shopID]
	return ok
}

// EntitlementResolver maps a viewer to the shops their entitled goods sold in
type EntitlementResolver struct {
	users repository.UserRepository
	goods repository.GoodsRepository
}

func NewEntitlementResolver(users repository.UserRepository, goods repository.GoodsRepository) *EntitlementResolver {
	return &EntitlementResolver{users: users, goods: goods}
}

// User loads the viewer's user record
func (r *EntitlementResolver) User(ctx context.Context, viewer Viewer) (*model.User, error) {
	user, err := r.users.GetByID(ctx, viewer.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, viewer.ID)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// Shops resolves good ids -> goods aggregates -> store ids
func (r *EntitlementResolver) Shops(ctx context.Context, viewer Viewer) (ShopScope, error) {
	if viewer.IsAdmin() {
		return ShopScope{All: true}, nil
	}
	user, err := r.User(ctx, viewer)
	if err != nil {
		return ShopScope{}, err
	}
	storeIDs, err := r.goods.StoreIDsForGoods(ctx, user.EntitledGoodsIDs())
	if err != nil {
		return ShopScope{}, fmt.Errorf("resolve entitled shops: %w", err)
	}
	scope := ShopScope{Shops: make(map[string]struct{}, len(storeIDs))}
	for _, id := range storeIDs {
		scope.Shops[id] = struct{}{}
	}
	return scope, nil
}
