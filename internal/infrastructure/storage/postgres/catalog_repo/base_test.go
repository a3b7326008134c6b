package catalog_repo

import (
	"strings"
	"testing"

	"larder/internal/core/id"
)

// Name uniqueness must hold across soft-deleted rows: deactivating
// "Acme" must not free the name for a new supplier. The query therefore
// must not filter on the active flag.
func TestExistsByKeyQuery_SeesInactiveRows(t *testing.T) {
	repo := newTestRepo()

	sql, args, err := repo.existsByKeyQuery("Acme", id.Nil()).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT 1 FROM test_table WHERE col1 = $1 LIMIT 1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if strings.Contains(sql, "active") {
		t.Errorf("uniqueness check must ignore the active flag, got: %s", sql)
	}
	if len(args) != 1 || args[0] != "Acme" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestExistsByKeyQuery_ExcludesOwnID(t *testing.T) {
	repo := newTestRepo()
	own := id.New()

	sql, args, err := repo.existsByKeyQuery("Acme", own).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT 1 FROM test_table WHERE col1 = $1 AND id <> $2 LIMIT 1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 2 || args[1] != own {
		t.Errorf("unexpected args: %v", args)
	}
}
