package postgres

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRegistry_CoversEveryTableInOrder(t *testing.T) {
	names := make([]string, 0, len(tableRegistry))
	for _, w := range tableRegistry {
		names = append(names, w.name)
	}
	assert.Equal(t, dataset.Tables, names)
}

func TestMigrations_CreateEveryTable(t *testing.T) {
	up, err := fs.ReadFile(migrationFiles, "migrations/000001_create_tables.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(migrationFiles, "migrations/000001_create_tables.down.sql")
	require.NoError(t, err)

	for _, table := range dataset.Tables {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
		assert.Contains(t, string(down), "DROP TABLE IF EXISTS "+table+";")
	}
}

func TestBuildStatements_SkipsEmptyTablesAndChunks(t *testing.T) {
	goals := 3
	lat, lon := 50.88, 4.70
	data := dataset.Dataset{
		Schedules: []schedule.Game{
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Sportshall: "De Kouter", Day: "ma", Date: "2023-10-02", Hour: "20:30", Team1: "A", Goals1: &goals, Team2: "B", Goals2: &goals},
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Sportshall: "De Kouter", Day: "di", Date: "2023-10-03", Hour: "21:00", Team1: "B", Team2: "A"},
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Sportshall: "De Kouter", Day: "wo", Date: "2023-10-04", Hour: "19:00", Team1: "A", Team2: "C"},
		},
		Sportshalls: []sportshall.Sportshall{
			{Area: "VLAAMS BRABANT", Region: "Leuven", Name: "De Kouter", RegionURL: "https://www.lzvcup.be/sportshalls/3", Latitude: &lat, Longitude: &lon},
		},
		Levels: []level.Level{{Team: "A", Tier: level.TierTop, Name: level.Name(level.TierTop)}},
	}

	tables, err := buildStatements(data, 2)
	require.NoError(t, err)
	require.Len(t, tables, len(dataset.Tables))

	byName := make(map[string]tableStatements, len(tables))
	for _, ts := range tables {
		byName[ts.name] = ts
	}

	assert.Empty(t, byName[dataset.TableCompetitions].statements)

	schedules := byName[dataset.TableSchedules].statements
	require.Len(t, schedules, 2)
	assert.True(t, strings.HasPrefix(schedules[0].Query,
		"INSERT INTO schedules (area, region, competition, sportshall, day, date, hour, team1, goals1, team2, goals2) VALUES "))
	assert.Len(t, schedules[0].Args, 22)
	assert.Len(t, schedules[1].Args, 11)
	assert.Nil(t, schedules[0].Args[19])

	halls := byName[dataset.TableSportshalls].statements
	require.Len(t, halls, 1)
	assert.Contains(t, halls[0].Query, "url_sportshall")
	assert.Contains(t, halls[0].Query, "url_region")

	levels := byName[dataset.TableLevels].statements
	require.Len(t, levels, 1)
	assert.Equal(t, []any{"A", level.TierTop, level.Name(level.TierTop)}, levels[0].Args)
}

func TestReplace_StopsWhenSchemaCannotBeRecreated(t *testing.T) {
	repo := NewDatasetRepository(nil, "postgres://unused", nil)
	repo.recreate = func(string) error { return errors.New("connection refused") }

	err := repo.Replace(context.Background(), dataset.Dataset{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recreate schema")
}
