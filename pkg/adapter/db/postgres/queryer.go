package postgres

import (
	"context"

	"github.com/momeni/libweb/pkg/core/repo"
	"gorm.io/gorm"
)

type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
