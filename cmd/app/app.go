package app

import (
	"context"
	"io"

	"blogbootstrap/internal/config"
	"blogbootstrap/internal/database"
	"blogbootstrap/internal/repository"
	"blogbootstrap/internal/service"
)

// App connects to the database and wires the repository and services on top of it.
func App(ctx context.Context, cfg *config.Config, out io.Writer) (*database.DB, *service.Service, error) {
	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, out)

	return db, services, nil
}
