package db

import (
	"io"
	"strings"
	"testing"
)

func TestMigrationSource_EmbedsInitialSchema(t *testing.T) {
	src, err := migrationSource()
	if err != nil {
		t.Fatalf("migrationSource: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first != 1 {
		t.Fatalf("first version = %d, want 1", first)
	}

	up, ident, err := src.ReadUp(first)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer up.Close()
	body, _ := io.ReadAll(up)
	if ident != "create_lending_tables" {
		t.Fatalf("identifier = %q", ident)
	}
	for _, table := range []string{"customers", "loan_products", "loan_applications", "repayments"} {
		if !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS "+table) {
			t.Fatalf("up migration misses table %s", table)
		}
	}

	down, _, err := src.ReadDown(first)
	if err != nil {
		t.Fatalf("ReadDown: %v", err)
	}
	down.Close()
}
