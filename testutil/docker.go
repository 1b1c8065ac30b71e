package testutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// EnsureDatabase makes TEST_DATABASE_URL point at a usable Postgres.
//
// When the variable is already set it is left alone. Otherwise, if
// TEST_DOCKER=1, a throwaway postgres container is started with dockertest
// and the variable is set to its DSN. The returned func removes the
// container; it is a no-op when nothing was started.
func EnsureDatabase() (func(), error) {
	if os.Getenv("TEST_DATABASE_URL") != "" || os.Getenv("TEST_DOCKER") != "1" {
		return func() {}, nil
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("testutil.EnsureDatabase: connect to docker: %w", err)
	}
	pool.MaxWait = time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=reenam",
			"POSTGRES_PASSWORD=reenam",
			"POSTGRES_DB=reenam_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("testutil.EnsureDatabase: start postgres: %w", err)
	}
	// Kill the container even if the test binary is interrupted.
	_ = resource.Expire(300)

	purge := func() { _ = pool.Purge(resource) }

	dsn := fmt.Sprintf("postgres://reenam:reenam@%s/reenam_test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	err = pool.Retry(func() error {
		db, err := OpenSQLDB(context.Background(), dsn)
		if err != nil {
			return err
		}
		return db.Close()
	})
	if err != nil {
		purge()
		return nil, fmt.Errorf("testutil.EnsureDatabase: wait for postgres: %w", err)
	}

	if err := os.Setenv("TEST_DATABASE_URL", dsn); err != nil {
		purge()
		return nil, fmt.Errorf("testutil.EnsureDatabase: %w", err)
	}
	return purge, nil
}
