package database

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Open connects to Neo4j and verifies the connection.  The returned driver
// holds the process-wide connection pool and must be closed on shutdown.
func Open(ctx context.Context, uri, user, pass string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""),
		func(c *neo4j.Config) {
			// Pool settings
			c.MaxConnectionPoolSize = 25
			c.MaxConnectionLifetime = 30 * time.Minute
		})
	if err != nil {
		return nil, err
	}

	// Verify connectivity with timeout
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return nil, err
	}
	return driver, nil
}

// Ping executes a trivial read statement against the graph.  It is used by
// the health endpoint to confirm the database is reachable.
func Ping(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	_, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, "RETURN 1", nil)
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	return err
}
