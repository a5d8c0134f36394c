package main

import (
	"context"
	"fmt"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/repository/meshrepo"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/repository/postgres"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/adapters/repository/sqlite"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/usecases"
	"github.com/Deltares-research/DHYDROGUI-sub073/internal/infrastructure/config"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
)

// openRepository selects the mesh store named by cfg.Storage.Driver. The
// returned func releases it.
func openRepository(ctx context.Context, cfg *config.Config) (usecases.MeshRepository, func(), error) {
	ser, err := serialization.New(cfg.Serialization.Codec, cfg.Serialization.Compression)
	if err != nil {
		return nil, nil, fmt.Errorf("serializer: %w", err)
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return meshrepo.NewInMemoryMeshRepository(), func() {}, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.DSN, ser)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Storage.Table != "" {
			store.WithTableName(cfg.Storage.Table)
			if err := store.CreateTables(ctx); err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, func() { store.Close() }, nil
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, cfg.Storage.DSN, ser)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Storage.Table != "" {
			store.WithTableName(cfg.Storage.Table)
			if err := store.CreateTables(ctx); err != nil {
				store.Close()
				return nil, nil, err
			}
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
