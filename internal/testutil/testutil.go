package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jobsoutcuba/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase holds the in-memory SQLite connection for integration tests.
type TestDatabase struct {
	DB *gorm.DB
}

// TestRedis holds the miniredis mock.
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

// SetupTestDatabase creates an in-memory SQLite database for integration tests.
// Each test gets its own named shared-cache database so the connection pool
// sees one store but tests stay isolated from each other.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Provincia{},
		&models.Municipio{},
		&models.Usuario{},
		&models.ConfiguracionUsuario{},
		&models.Trabajo{},
		&models.TrabajoContacto{},
		&models.Publicacion{},
		&models.Guardado{},
	)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return &TestDatabase{DB: db}
}

// Teardown closes the test database connection.
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis starts an in-memory Redis mock.
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	return &TestRedis{
		Server: server,
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

// Teardown stops the Redis mock.
func (tr *TestRedis) Teardown(t *testing.T) {
	tr.Server.Close()
}

// CleanDatabase deletes all rows, child tables first.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	tables := []string{
		"guardados",
		"publicaciones",
		"trabajo_contactos",
		"trabajos",
		"configuraciones_usuario",
		"usuarios",
		"municipios",
		"provincias",
	}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}
