package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() dataset.Dataset {
	three, two := 3, 2
	return dataset.Dataset{
		Regions: []league.Region{
			{Area: "VLAAMS BRABANT", Name: "Leuven", SportshallsURL: "https://www.lzvcup.be/sportshalls/3"},
		},
		Competitions: []league.Competition{
			{Area: "VLAAMS BRABANT", Region: "Leuven", Name: "1e klasse", URL: "https://www.lzvcup.be/competition/11"},
		},
		Teams: []league.Team{
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Name: "Team A", URL: "https://www.lzvcup.be/team/1"},
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Name: "Team B", URL: "https://www.lzvcup.be/team/2"},
		},
		Schedules: []schedule.Game{
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Sportshall: "De Kouter", Day: "ma", Date: "2023-10-02", Hour: "20:30", Team1: "Team A", Goals1: &three, Team2: "Team B", Goals2: &two},
			{Area: "VLAAMS BRABANT", Region: "Leuven", Competition: "1e klasse", Sportshall: "De Kouter", Day: "di", Date: "2023-10-10", Hour: "21:15", Team1: "Team B", Team2: "Team A"},
		},
	}
}

func TestExporter_WritesEveryTable(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir, nil)

	require.NoError(t, exporter.Replace(context.Background(), sampleDataset()))

	for _, table := range dataset.Tables {
		_, err := os.Stat(filepath.Join(dir, table+".csv"))
		require.NoError(t, err, "missing %s.csv", table)
	}

	f, err := os.Open(filepath.Join(dir, dataset.TableSchedules+".csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "goals1", records[0][8])
	assert.Equal(t, "3", records[1][8])
	assert.Equal(t, "", records[2][8])
	assert.Equal(t, "", records[2][10])
}

func TestExporter_WritesCompetitionTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewExporter(dir, nil).Replace(context.Background(), sampleDataset()))

	raw, err := os.ReadFile(filepath.Join(dir, CompetitionsFile))
	require.NoError(t, err)

	var tree map[string]map[string]struct {
		Competitions map[string]struct {
			URL   string            `json:"url"`
			Teams map[string]string `json:"teams"`
		} `json:"competitions"`
		Sportshalls string `json:"sportshalls"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &tree))

	leuven := tree["VLAAMS BRABANT"]["Leuven"]
	assert.Equal(t, "https://www.lzvcup.be/sportshalls/3", leuven.Sportshalls)
	comp := leuven.Competitions["1e klasse"]
	assert.Equal(t, "https://www.lzvcup.be/competition/11", comp.URL)
	assert.Equal(t, map[string]string{
		"Team A": "https://www.lzvcup.be/team/1",
		"Team B": "https://www.lzvcup.be/team/2",
	}, comp.Teams)
}

func TestCSVTables_MatchDatasetTables(t *testing.T) {
	names := make([]string, 0, len(csvTables))
	for _, table := range csvTables {
		names = append(names, table.name)
	}
	assert.Equal(t, dataset.Tables, names)
}
