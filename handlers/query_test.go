// ABOUTME: Query tool test suite
// ABOUTME: Tests query_entities with text, category, and range filters across entity types
package handlers

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/pulse/db"
	"github.com/harperreed/pulse/models"
)

var testRef = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func setupQueryTestDB(t *testing.T) (*sql.DB, func()) {
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	database.SetMaxOpenConns(1)

	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	cleanup := func() {
		database.Close()
	}

	return database, cleanup
}

func testSettings() Settings {
	return Settings{
		Location: time.UTC,
		Now:      func() time.Time { return testRef },
	}
}

func seedLeads(t *testing.T, database *sql.DB) {
	leads := []*models.Lead{
		{Title: "Acme rollout", Status: models.LeadQualified, EstimatedValue: 50000, Score: 85},
		{Title: "Globex renewal", Status: models.LeadContacted, EstimatedValue: 20000, Score: 60},
		{Title: "Acme support", Status: models.LeadClosedWon, EstimatedValue: 12000, Score: 88},
	}
	for _, l := range leads {
		if err := db.CreateLead(database, l); err != nil {
			t.Fatalf("Failed to create lead: %v", err)
		}
	}
}

func TestQueryEntitiesLeads(t *testing.T) {
	database, cleanup := setupQueryTestDB(t)
	defer cleanup()
	seedLeads(t, database)

	handlers := NewQueryHandlers(database, testSettings(), zap.NewNop())

	t.Run("QueryAllLeads", func(t *testing.T) {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{EntityType: "lead"})
		if err != nil {
			t.Fatalf("QueryEntities failed: %v", err)
		}
		if output.EntityType != "lead" {
			t.Errorf("Expected entity_type 'lead', got %s", output.EntityType)
		}
		if output.Count != 3 || output.Matched != 3 {
			t.Errorf("Expected 3 leads, got count=%d matched=%d", output.Count, output.Matched)
		}
		if output.TotalValue != 82000 {
			t.Errorf("Expected total value 82000, got %v", output.TotalValue)
		}
	})

	t.Run("QueryByText", func(t *testing.T) {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{
			EntityType: "lead",
			Query:      "ACME",
		})
		if err != nil {
			t.Fatalf("QueryEntities failed: %v", err)
		}
		if output.Count != 2 {
			t.Errorf("Expected 2 Acme leads, got %d", output.Count)
		}
		for _, r := range output.Results {
			lead := r.(models.Lead)
			if !strings.Contains(lead.Title, "Acme") {
				t.Errorf("Unexpected lead in results: %s", lead.Title)
			}
		}
	})

	t.Run("QueryByStatusAndScore", func(t *testing.T) {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{
			EntityType: "lead",
			Query:      "acme",
			Filters:    map[string]string{"status": models.LeadQualified},
			Min:        map[string]float64{"score": 80},
		})
		if err != nil {
			t.Fatalf("QueryEntities failed: %v", err)
		}
		if output.Count != 1 {
			t.Fatalf("Expected 1 lead, got %d", output.Count)
		}
		if output.TotalValue != 50000 {
			t.Errorf("Expected total value 50000, got %v", output.TotalValue)
		}
	})

	t.Run("AllSelectionIsNoRestriction", func(t *testing.T) {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{
			EntityType: "lead",
			Filters:    map[string]string{"status": "all"},
		})
		if err != nil {
			t.Fatalf("QueryEntities failed: %v", err)
		}
		if output.Count != 3 {
			t.Errorf("Expected 3 leads, got %d", output.Count)
		}
	})

	t.Run("LimitTruncatesButTotalsAllMatches", func(t *testing.T) {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{
			EntityType: "lead",
			Limit:      1,
		})
		if err != nil {
			t.Fatalf("QueryEntities failed: %v", err)
		}
		if output.Count != 1 {
			t.Errorf("Expected 1 returned lead, got %d", output.Count)
		}
		if output.Matched != 3 {
			t.Errorf("Expected 3 matched leads, got %d", output.Matched)
		}
		if output.TotalValue != 82000 {
			t.Errorf("Expected total value 82000, got %v", output.TotalValue)
		}
	})
}

func TestQueryEntitiesOpportunities(t *testing.T) {
	database, cleanup := setupQueryTestDB(t)
	defer cleanup()

	opps := []*models.Opportunity{
		{Name: "Small", Value: 1000, Probability: 50, Stage: models.StageProposal},
		{Name: "Large", Value: 90000, Probability: 25, Stage: models.StageNegotiation},
	}
	for _, o := range opps {
		if err := db.CreateOpportunity(database, o); err != nil {
			t.Fatalf("Failed to create opportunity: %v", err)
		}
	}

	handlers := NewQueryHandlers(database, testSettings(), zap.NewNop())
	_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{
		EntityType: "opportunity",
		Min:        map[string]float64{"value": 5000},
		Max:        map[string]float64{"value": 100000},
	})
	if err != nil {
		t.Fatalf("QueryEntities failed: %v", err)
	}
	if output.Count != 1 {
		t.Fatalf("Expected 1 opportunity, got %d", output.Count)
	}
	if got := output.Results[0].(models.Opportunity).Name; got != "Large" {
		t.Errorf("Expected Large, got %s", got)
	}
}

func TestQueryEntitiesEmptyDatabase(t *testing.T) {
	database, cleanup := setupQueryTestDB(t)
	defer cleanup()

	handlers := NewQueryHandlers(database, testSettings(), zap.NewNop())
	for _, entityType := range []string{"contact", "company", "lead", "opportunity", "project", "event", "email", "activity"} {
		_, output, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{EntityType: entityType})
		if err != nil {
			t.Fatalf("QueryEntities(%s) failed: %v", entityType, err)
		}
		if output.Count != 0 || output.TotalValue != 0 {
			t.Errorf("Expected empty result for %s, got count=%d total=%v", entityType, output.Count, output.TotalValue)
		}
	}
}

func TestQueryEntitiesInvalidEntityType(t *testing.T) {
	database, cleanup := setupQueryTestDB(t)
	defer cleanup()

	handlers := NewQueryHandlers(database, testSettings(), zap.NewNop())
	_, _, err := handlers.QueryEntities(context.Background(), &mcp.CallToolRequest{}, QueryEntitiesInput{EntityType: "deal"})
	if err == nil {
		t.Fatal("Expected error for invalid entity type")
	}
	if !strings.Contains(err.Error(), "invalid entity_type") {
		t.Errorf("Unexpected error message: %v", err)
	}
}
