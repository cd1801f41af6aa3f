package postgres

import "testing"

func TestInsertStmtUsesPositionalPlaceholders(t *testing.T) {
	got := insertStmt("equipment", []string{"equipment_id", "status"})
	want := `INSERT INTO "equipment" ("equipment_id", "status") VALUES ($1, $2)`
	if got != want {
		t.Fatalf("insert statement mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestCreateStmtDeclaresTextColumns(t *testing.T) {
	got := createStmt("batches", []string{"batch_id", "parent_batch_id"})
	want := `CREATE TABLE IF NOT EXISTS "batches" ("batch_id" TEXT, "parent_batch_id" TEXT)`
	if got != want {
		t.Fatalf("create statement mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestQuoteIdentEscapesQuotes(t *testing.T) {
	if got := quoteIdent(`a"b`); got != `"a""b"` {
		t.Fatalf("unexpected quoting %q", got)
	}
}
