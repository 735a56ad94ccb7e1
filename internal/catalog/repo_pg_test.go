package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var toolColumns = []string{
	"id", "name", "category", "setup_skill", "daily_skill", "pricing_model", "baseline_cost",
	"compatible_with", "popularity_score", "community_sentiment", "cost_model", "rules",
}

func TestPGRepoListToolsDecodesJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(toolColumns).
		AddRow("react", "React", "frontend", 1, 2, "free", 0.0,
			[]byte(`["typescript","vite"]`), 0.95, "highly_positive", nil, []byte(`[]`)).
		AddRow("supabase", "Supabase", "database", 2, 2, "freemium", 25.0,
			[]byte(`[]`), 0.8, "positive", []byte(`{"type":"Subscription","base_cost_monthly":25,"has_free_tier":true}`),
			[]byte(`[{"kind":"category","targets":["auth"],"reason":"bundles auth"}]`))
	mock.ExpectQuery("SELECT id, name, category").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	tools, err := repo.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}
	if tools[0].CostModel != (FreeCost{}) {
		t.Fatalf("expected derived free cost model, got %#v", tools[0].CostModel)
	}
	if len(tools[0].CompatibleWith) != 2 {
		t.Fatalf("expected compatible_with decoded, got %v", tools[0].CompatibleWith)
	}
	if tools[1].CostModel != (SubscriptionCost{BaseCostMonthly: 25, HasFreeTier: true}) {
		t.Fatalf("unexpected cost model %#v", tools[1].CostModel)
	}
	if len(tools[1].Rules) != 1 || tools[1].Rules[0].Targets[0] != "auth" {
		t.Fatalf("unexpected rules %v", tools[1].Rules)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListToolsSkipsInvalidRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows(toolColumns).
		AddRow("bad-skill", "Bad", "frontend", 9, 2, "free", 0.0, nil, 0.5, "neutral", nil, nil).
		AddRow("bad-json", "Bad JSON", "frontend", 1, 1, "free", 0.0, []byte(`{`), 0.5, "neutral", nil, nil).
		AddRow("vue", "Vue", "frontend", 1, 1, "free", 0.0, nil, 0.7, "positive", nil, nil)
	mock.ExpectQuery("SELECT id, name, category").WillReturnRows(rows)

	tools, err := (&PGRepo{DB: db}).ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 1 || tools[0].ID != "vue" {
		t.Fatalf("expected only vue, got %+v", tools)
	}
}

func TestPGRepoListToolsPropagatesQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("connection refused")
	mock.ExpectQuery("SELECT id, name, category").WillReturnError(boom)

	if _, err := (&PGRepo{DB: db}).ListTools(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}

func TestPGRepoUpsertToolsWritesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tools := []ToolProfile{
		{ID: "react", Name: "React", Category: "frontend", Skills: Skills{Setup: 1, Daily: 2}, PricingModel: "free", CostModel: FreeCost{}},
		{ID: "supabase", Name: "Supabase", Category: "database", Skills: Skills{Setup: 2, Daily: 2}, PricingModel: "freemium", BaselineCost: 25,
			CostModel: SubscriptionCost{BaseCostMonthly: 25, HasFreeTier: true}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tools").
		WithArgs("react", "React", "frontend", 1, 2, "free", 0.0, []byte(`[]`), 0.0, "", []byte(`{"type":"Free"}`), []byte(`[]`), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tools").
		WithArgs("supabase", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			[]byte(`{"type":"Subscription","base_cost_monthly":25,"has_free_tier":true}`), sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.UpsertTools(context.Background(), tools); err != nil {
		t.Fatalf("UpsertTools: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpsertToolsRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	boom := errors.New("constraint violation")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tools").WillReturnError(boom)
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	err = repo.UpsertTools(context.Background(), []ToolProfile{{ID: "react", Category: "frontend", Skills: Skills{Setup: 1, Daily: 1}}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
