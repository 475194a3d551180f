// ABOUTME: Tests for CLI commands
// ABOUTME: Runs each command against a seeded in-memory database and checks the output
package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/pulse/config"
	"github.com/harperreed/pulse/db"
	"github.com/harperreed/pulse/insights"
)

var testRef = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

func setupEnv(t *testing.T, seed bool) (*Env, *bytes.Buffer) {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.InitSchema(database))

	if seed {
		_, err := db.Seed(database, testRef)
		require.NoError(t, err)
	}

	cfg := config.Default()
	cfg.Timezone = "UTC"

	out := &bytes.Buffer{}
	return &Env{DB: database, Config: cfg, Now: testRef, Logger: zap.NewNop(), Out: out}, out
}

func TestDashboardCommandPlain(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, DashboardCommand(env, []string{"--plain"}))
	assert.Contains(t, out.String(), "PULSE CRM DASHBOARD")
	assert.Contains(t, out.String(), "PIPELINE OVERVIEW")
	assert.Contains(t, out.String(), "NEEDS ATTENTION")
}

func TestDashboardCommandJSON(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, DashboardCommand(env, []string{"--json"}))

	var d insights.Dashboard
	require.NoError(t, json.Unmarshal(out.Bytes(), &d))
	assert.Equal(t, 5, d.Pipeline.Count)
	assert.InDelta(t, 50.0, d.Pipeline.WinRate, 0.001)
}

func TestLeadsCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, LeadsCommand(env, nil))
	assert.Contains(t, out.String(), "Total: 6 lead(s)")

	out.Reset()
	require.NoError(t, LeadsCommand(env, []string{"--status", "closed_won"}))
	assert.Contains(t, out.String(), "Total: 1 lead(s)")
}

func TestLeadsCommandEmpty(t *testing.T) {
	env, out := setupEnv(t, false)

	require.NoError(t, LeadsCommand(env, nil))
	assert.Equal(t, "No leads found\n", out.String())
}

func TestPipelineCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, PipelineCommand(env, nil))
	assert.Contains(t, out.String(), "STAGE")
	assert.Contains(t, out.String(), "win rate 50.0%")

	out.Reset()
	require.NoError(t, PipelineCommand(env, []string{"--min", "30000"}))
	assert.Contains(t, out.String(), "Total: 2 opportunity(ies)")
}

func TestProjectsCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, ProjectsCommand(env, nil))
	assert.Contains(t, out.String(), "Total: 4 project(s)")
}

func TestEmailsCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, EmailsCommand(env, nil))
	assert.Contains(t, out.String(), "Total: 6 email(s)")

	out.Reset()
	require.NoError(t, EmailsCommand(env, []string{"--status", "no-such-status"}))
	assert.Equal(t, "No emails found\n", out.String())
}

func TestAgendaCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, AgendaCommand(env, nil))
	assert.Contains(t, out.String(), "OVERDUE (1)")
	assert.Contains(t, out.String(), "TODAY (1)")
	assert.Contains(t, out.String(), "PAST (1)")

	out.Reset()
	require.NoError(t, AgendaCommand(env, []string{"--type", "leads"}))
	assert.Contains(t, out.String(), "THIS WEEK (1)")
	assert.Contains(t, out.String(), "UNDATED (1)")

	assert.Error(t, AgendaCommand(env, []string{"--type", "emails"}))
}

func TestSeedCommand(t *testing.T) {
	env, out := setupEnv(t, false)

	require.NoError(t, SeedCommand(env, nil))
	assert.Contains(t, out.String(), "Seeded sample data (reference 2026-03-11)")
	assert.Contains(t, out.String(), "Leads:         6")
}

func TestVizPipelineCommand(t *testing.T) {
	env, out := setupEnv(t, true)

	require.NoError(t, VizPipelineCommand(env, nil))
	assert.Contains(t, out.String(), "digraph")

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	out.Reset()
	require.NoError(t, VizPipelineCommand(env, []string{"--output", path}))
	assert.Contains(t, out.String(), "Wrote pipeline graph")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stage_negotiation")
}

func TestFilterFlagsCriteria(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := addFilterFlags(fs, "stage", "value")
	require.NoError(t, fs.Parse([]string{"--query", "acme", "--stage", "proposal", "--min", "10"}))

	c := f.criteria()
	assert.Equal(t, "acme", c.Query)
	assert.Equal(t, "proposal", c.Selections["stage"])
	assert.Equal(t, 10.0, c.Min["value"])
	assert.NotContains(t, c.Max, "value")
}

func TestOptionalFloatRejectsGarbage(t *testing.T) {
	var o optionalFloat
	assert.Error(t, o.Set("lots"))
	assert.Equal(t, "", o.String())
	require.NoError(t, o.Set("2.5"))
	assert.Equal(t, "2.5", o.String())
}

func TestMCPServerLists(t *testing.T) {
	env, _ := setupEnv(t, true)

	server, err := NewMCPServer(env)
	require.NoError(t, err)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_dashboard", "get_agenda", "query_entities", "generate_pipeline_graph"}, names)

	resources, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, resources.Resources, 3)

	prompts, err := session.ListPrompts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, prompts.Prompts, 2)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "query_entities",
		Arguments: map[string]any{"entity_type": "lead", "filters": map[string]string{"status": "new"}},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}
