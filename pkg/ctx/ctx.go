package ctx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Context carries the process-wide handles shared by repos and services.
type Context struct {
	Ctx   context.Context
	DB    *gorm.DB
	Redis *redis.Client
	Log   *zap.SugaredLogger
}

func NewContext(ctx context.Context, db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Context {
	return &Context{
		Ctx:   ctx,
		DB:    db,
		Redis: rdb,
		Log:   log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}
