package catalog

import "context"

type Repository interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItemByID(ctx context.Context, id int) (*Item, error)
	ListByKind(ctx context.Context, kind string) ([]Item, error)
}
