package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("sequence", "kind").
		From("match_deliveries").
		Where(Eq("match_public_id", "m1"), Eq("innings_number", 1), Lte("sequence", 12)).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT sequence, kind FROM match_deliveries WHERE match_public_id = $1 AND innings_number = $2 AND sequence <= $3 ORDER BY sequence"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "m1" || args[1] != 1 || args[2] != 12 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderPaging(t *testing.T) {
	query, args, err := Select("*").
		From("matches").
		Where(Eq("tournament_id", "cup"), IsNull("deleted_at"), In("state", []any{"completed", "tied"})).
		OrderBy("created_at", "public_id").
		Limit(10).
		Offset(20).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM matches WHERE tournament_id = $1 AND deleted_at IS NULL AND state IN ($2, $3) ORDER BY created_at, public_id LIMIT 10 OFFSET 20"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestEmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("matches").Where(In("state", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM matches WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("standings_applied_matches").
		Columns("tournament_id", "match_public_id").
		Values("cup", "m1").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO standings_applied_matches (tournament_id, match_public_id) VALUES ($1, $2) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "cup" || args[1] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		MatchID  string `db:"match_public_id"`
		Sequence int    `db:"sequence"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("match_deliveries", row{MatchID: "m1", Sequence: 3, internal: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO match_deliveries (match_public_id, sequence) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("state", "completed").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "m1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET state = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "completed" || args[1] != "m1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("tournament_standings").
		Where(Eq("tournament_id", "cup")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM tournament_standings WHERE tournament_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}

	if _, _, err := DeleteFrom("tournament_standings").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertBuilderMultiRowAndExpr(t *testing.T) {
	query, args, err := InsertInto("standings_applied_matches").
		Columns("tournament_id", "match_public_id").
		Values("cup", "m1").
		Values("cup", "m2").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO standings_applied_matches (tournament_id, match_public_id) VALUES ($1, $2), ($3, $4)" || len(args) != 4 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}

	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}

	query, args, err = Select("COUNT(*)").From("match_deliveries").
		Where(Eq("match_public_id", "m1"), Expr("sequence BETWEEN ? AND ?", 2, 5)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT COUNT(*) FROM match_deliveries WHERE match_public_id = $1 AND sequence BETWEEN $2 AND $3" || len(args) != 3 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	var nilRow *struct {
		ID int `db:"id"`
	}
	if _, _, err := InsertModel("matches", nilRow, ""); err == nil {
		t.Fatalf("expected error for nil model")
	}
	if _, _, err := InsertModel("matches", 42, ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	if _, _, err := InsertModel("matches", struct{ Name string }{Name: "x"}, ""); err == nil {
		t.Fatalf("expected error for model without db tags")
	}
}
