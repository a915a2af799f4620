package provider

import (
	"fmt"
	"testing"
	"time"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestNewContainerWiresServices(t *testing.T) {
	dsn := fmt.Sprintf("file:provider_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	store := storage.NewMemoryStore("")
	c, err := NewContainer(&config.Config{}, db, WithObjectStore(store))
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	defer c.Close()

	if c.ObjectStore != store {
		t.Fatalf("object store option not applied")
	}
	if c.QueueClient.Enabled() || c.Cache.Enabled() {
		t.Fatalf("queue and cache should be disabled without config")
	}
	if c.AuthService == nil || c.PaymentService == nil || c.InvoiceDocumentService == nil || c.AuthzService == nil {
		t.Fatalf("services not wired")
	}
	roles, err := c.AuthzService.ListRoles()
	if err != nil || len(roles) == 0 {
		t.Fatalf("builtin roles should be bootstrapped: %v (%v)", roles, err)
	}
}

func TestNewContainerRequiresDB(t *testing.T) {
	if _, err := NewContainer(&config.Config{}, nil); err == nil {
		t.Fatalf("nil db should be rejected")
	}
}
