package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/wasteworks/hazbill/internal/config"
	"github.com/wasteworks/hazbill/internal/logger"
	"github.com/wasteworks/hazbill/internal/migration"
	"github.com/wasteworks/hazbill/internal/server"
	"github.com/wasteworks/hazbill/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
