// Package testutil manages throwaway database containers for integration
// tests and the local dev runner.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/EL-K-Code/recipe-app-api/data"
)

const (
	dbName     = "recipes"
	dbUser     = "recipeuser"
	dbPassword = "recipepass"
	dbPort     = nat.Port("3306/tcp")
)

// DBContainer wraps a running MariaDB container seeded with the recipe
// schema.
type DBContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// DSN returns a go-sql-driver DSN for the container.
func (c *DBContainer) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// Terminate stops and removes the container.
func (c *DBContainer) Terminate(ctx context.Context) error {
	if c.Container == nil {
		return nil
	}
	return c.Container.Terminate(ctx)
}

// StartMariaDB starts a MariaDB container with the embedded DDL applied on
// first boot and waits until the database accepts connections. The image is
// taken from DB_IMAGE, defaulting to mariadb:11.
func StartMariaDB(ctx context.Context) (*DBContainer, error) {
	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{string(dbPort)},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "rootpass",
			"MYSQL_DATABASE":      dbName,
			"MYSQL_USER":          dbUser,
			"MYSQL_PASSWORD":      dbPassword,
		},
		Files: []testcontainers.ContainerFile{
			{
				Reader:            strings.NewReader(data.InitdbMariaDBTables),
				ContainerFilePath: "/docker-entrypoint-initdb.d/001-ddl-tables.sql",
				FileMode:          0o644,
			},
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("ready for connections").WithStartupTimeout(90*time.Second),
			wait.ForListeningPort(dbPort),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start database container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	mapped, err := container.MappedPort(ctx, dbPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	dbc := &DBContainer{
		Container: container,
		Host:      host,
		Port:      mapped.Port(),
		Database:  dbName,
		User:      dbUser,
		Password:  dbPassword,
	}

	if err := waitForDB(ctx, dbc.DSN()); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return dbc, nil
}

// waitForDB pings until the server answers or the deadline passes. The
// container log line appears slightly before the listener accepts auth.
func waitForDB(ctx context.Context, dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(60 * time.Second)
	for {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database not reachable: %w", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
