package integration

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/fruits-in-go/pkg/db"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/fruits-in-go/pkg/server/store/gorm"
	mongostore "github.com/doodlesbykumbi/fruits-in-go/pkg/server/store/mongo"
	"github.com/doodlesbykumbi/fruits-in-go/pkg/views"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	Backend       db.Backend
	DatabaseURL   string            // Connection string for the test database
	Fruits        store.FruitsStore // Direct store access for setup and assertions
	Health        store.HealthStore
	Container     testcontainers.Container
	ServerURL     string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server // For inline mode
	closeDB       func(context.Context) error
}

// NewTestContext starts the test database and a fruits server against it.
// Backends, chosen with FRUITS_TEST_BACKEND:
//   - sqlite (default): a file in a temporary directory, no container
//   - mongo: MongoDB testcontainer
//   - postgres: PostgreSQL testcontainer
//
// Modes:
//   - Inline mode (default): the server runs in-process
//   - Binary mode: Set FRUITS_BINARY to the path of the fruitsctl binary
func NewTestContext(ctx context.Context) (*TestContext, error) {
	binaryPath := os.Getenv("FRUITS_BINARY")
	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("FRUITS_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	tc := &TestContext{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			// Redirects are asserted, not followed
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	var err error
	switch backend := os.Getenv("FRUITS_TEST_BACKEND"); backend {
	case "", "sqlite":
		err = tc.startSQLite()
	case "mongo":
		err = tc.startMongo(ctx)
	case "postgres":
		err = tc.startPostgres(ctx)
	default:
		err = fmt.Errorf("unknown FRUITS_TEST_BACKEND %q", backend)
	}
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}

	if err := tc.connectStore(ctx); err != nil {
		tc.Close(ctx)
		return nil, err
	}

	port, err := freePort()
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}
	tc.ServerURL = fmt.Sprintf("http://127.0.0.1:%s", port)

	if binaryPath != "" {
		tc.ServerProcess, tc.Cancel, err = startBinary(binaryPath, tc.DatabaseURL, port)
	} else {
		tc.InlineServer, tc.Cancel, err = startInlineServer(tc, port)
	}
	if err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("failed to start server: %w", err)
	}

	// Wait for server to be ready
	if err := waitForServer(tc.ServerURL, 30*time.Second); err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return tc, nil
}

func (tc *TestContext) startMongo(ctx context.Context) error {
	container, err := tcmongodb.Run(ctx, "mongo:7")
	if err != nil {
		return fmt.Errorf("failed to start mongodb container: %w", err)
	}
	tc.Container = container

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connection string: %w", err)
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}
	u.Path = "/fruits_test"
	tc.DatabaseURL = u.String()
	return nil
}

func (tc *TestContext) startPostgres(ctx context.Context) error {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fruits_test"),
		tcpostgres.WithUsername("fruits"),
		tcpostgres.WithPassword("fruits"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to start postgres container: %w", err)
	}
	tc.Container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("failed to get connection string: %w", err)
	}
	tc.DatabaseURL = connStr
	return nil
}

func (tc *TestContext) startSQLite() error {
	dir, err := os.MkdirTemp("", "fruits-integration-")
	if err != nil {
		return err
	}
	tc.DatabaseURL = "sqlite://" + filepath.Join(dir, "fruits.db")
	return nil
}

// connectStore opens the store used by the steps to prepare and inspect data
func (tc *TestContext) connectStore(ctx context.Context) error {
	cfg := db.Config{URL: tc.DatabaseURL}
	tc.Backend = db.DetectBackend(tc.DatabaseURL)

	if tc.Backend == db.BackendMongo {
		client, database, err := db.ConnectMongo(cfg)
		if err != nil {
			return err
		}
		tc.Fruits = mongostore.NewFruitsStore(database)
		tc.Health = mongostore.NewHealthStore(client)
		tc.closeDB = client.Disconnect
		return nil
	}

	database, err := db.Connect(cfg)
	if err != nil {
		return err
	}
	fruits := gormstore.NewFruitsStore(database)
	if err := fruits.EnsureTable(ctx); err != nil {
		return fmt.Errorf("failed to prepare fruits table: %w", err)
	}
	tc.Fruits = fruits
	tc.Health = gormstore.NewHealthStore(database)
	tc.closeDB = func(context.Context) error {
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// startInlineServer starts the server in-process (no binary needed),
// sharing the steps' store.
func startInlineServer(tc *TestContext, port string) (*server.Server, context.CancelFunc, error) {
	renderer, err := views.Embedded()
	if err != nil {
		return nil, nil, err
	}

	s := server.NewServer(tc.Fruits, tc.Health, renderer, zap.NewNop(), "127.0.0.1", port)
	endpoints.RegisterAll(s)

	listener, err := net.Listen("tcp", "127.0.0.1:"+port)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener on port %s: %w", port, err)
	}

	// Start server in background
	go func() {
		_ = s.StartWithListener(listener)
	}()

	cancel := func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = s.Shutdown(shutdownCtx)
	}
	return s, cancel, nil
}

// startBinary starts the fruitsctl server binary
func startBinary(binaryPath, dbURL, port string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, binaryPath, "server", "-b", "127.0.0.1", "-p", port)
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"FRUITS_LOG_LEVEL=debug",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}

	return cmd, cancel, nil
}

func freePort() (string, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("failed to allocate port: %w", err)
	}
	defer func() { _ = l.Close() }()
	_, port, err := net.SplitHostPort(l.Addr().String())
	return port, err
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if tc.closeDB != nil {
		_ = tc.closeDB(ctx)
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
