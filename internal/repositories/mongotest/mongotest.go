// Package mongotest starts a throwaway MongoDB container for repository tests.
package mongotest

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Start launches mongo:7 and returns a connected client plus a stop func.
// When Docker is not reachable both are nil, and tests using Database skip.
func Start() (client *mongo.Client, stop func()) {
	ctx := context.Background()

	// suppress logging
	testcontainers.Logger = log.New(io.Discard, "", 0)

	defer func() {
		if r := recover(); r != nil {
			client, stop = nil, nil
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
	})
	if err != nil {
		return nil, nil
	}

	terminate := func() { _ = container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return nil, nil
	}
	port, err := container.MappedPort(ctx, "27017/tcp")
	if err != nil {
		terminate()
		return nil, nil
	}

	client, err = mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	if err != nil {
		terminate()
		return nil, nil
	}

	return client, func() {
		_ = client.Disconnect(ctx)
		terminate()
	}
}

// DatabaseName returns a database name unique to the running test and drops
// it when the test ends. It skips the test when no client is available.
func DatabaseName(t *testing.T, client *mongo.Client) string {
	t.Helper()
	if client == nil {
		t.Skip("mongo container not available")
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	name = fmt.Sprintf("t_%d_%s", time.Now().UnixNano()%1_000_000, name)
	if len(name) > 60 {
		name = name[:60]
	}

	t.Cleanup(func() {
		_ = client.Database(name).Drop(context.Background())
	})
	return name
}
