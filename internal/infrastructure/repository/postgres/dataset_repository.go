package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/league"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/level"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/palmares"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/player"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/schedule"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/sportshall"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/standing"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	qb "github.com/riskibarqy/lzvcup-scraper/internal/platform/querybuilder"
)

const defaultInsertChunk = 1000

// tableWriter turns one dataset table into insert statements.
type tableWriter struct {
	name  string
	build func(data dataset.Dataset, chunkSize int) ([]qb.Statement, error)
}

func writerFor[S, M any](table string, pick func(dataset.Dataset) []S, convert func(S) M) tableWriter {
	return tableWriter{
		name: table,
		build: func(data dataset.Dataset, chunkSize int) ([]qb.Statement, error) {
			src := pick(data)
			models := make([]M, 0, len(src))
			for _, row := range src {
				models = append(models, convert(row))
			}
			return qb.InsertModels(table, models, chunkSize)
		},
	}
}

// tableRegistry maps every stored table to its insert model, in load order.
var tableRegistry = []tableWriter{
	writerFor(dataset.TableCompetitions, func(d dataset.Dataset) []league.Competition { return d.Competitions }, competitionRow),
	writerFor(dataset.TableTeams, func(d dataset.Dataset) []league.Team { return d.Teams }, teamRow),
	writerFor(dataset.TableSchedules, func(d dataset.Dataset) []schedule.Game { return d.Schedules }, scheduleRow),
	writerFor(dataset.TableStandings, func(d dataset.Dataset) []standing.Standing { return d.Standings }, standingRow),
	writerFor(dataset.TablePlayerStats, func(d dataset.Dataset) []player.Stat { return d.PlayerStats }, playerStatRow),
	writerFor(dataset.TablePlayerHistory, func(d dataset.Dataset) []player.HistoricalEntry { return d.PlayerHistory }, playerHistoryRow),
	writerFor(dataset.TablePalmares, func(d dataset.Dataset) []palmares.Entry { return d.Palmares }, palmaresRow),
	writerFor(dataset.TableSportshalls, func(d dataset.Dataset) []sportshall.Sportshall { return d.Sportshalls }, sportshallRow),
	writerFor(dataset.TableLocations, func(d dataset.Dataset) []schedule.Location { return d.Locations }, locationRow),
	writerFor(dataset.TableLevels, func(d dataset.Dataset) []level.Level { return d.Levels }, levelRow),
}

// DatasetRepository stores a run by dropping and recreating the schema and
// bulk-inserting every table in one transaction.
type DatasetRepository struct {
	db        *sqlx.DB
	dbURL     string
	chunkSize int
	recreate  func(dbURL string) error
	logger    *logging.Logger
}

var _ dataset.Repository = (*DatasetRepository)(nil)

func NewDatasetRepository(db *sqlx.DB, dbURL string, logger *logging.Logger) *DatasetRepository {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &DatasetRepository{
		db:        db,
		dbURL:     dbURL,
		chunkSize: defaultInsertChunk,
		recreate:  RecreateSchema,
		logger:    logger,
	}
}

func (r *DatasetRepository) Replace(ctx context.Context, data dataset.Dataset) error {
	statements, err := buildStatements(data, r.chunkSize)
	if err != nil {
		return err
	}

	if err := r.recreate(r.dbURL); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace dataset: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range statements {
		for _, stmt := range table.statements {
			if _, err := tx.ExecContext(ctx, stmt.Query, stmt.Args...); err != nil {
				return fmt.Errorf("insert %s: %w", table.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace dataset: %w", err)
	}

	r.logger.InfoContext(ctx, "dataset stored", "tables", len(statements), "rows", totalRows(data))
	return nil
}

type tableStatements struct {
	name       string
	statements []qb.Statement
}

func buildStatements(data dataset.Dataset, chunkSize int) ([]tableStatements, error) {
	out := make([]tableStatements, 0, len(tableRegistry))
	for _, table := range tableRegistry {
		stmts, err := table.build(data, chunkSize)
		if err != nil {
			return nil, fmt.Errorf("build %s insert: %w", table.name, err)
		}
		out = append(out, tableStatements{name: table.name, statements: stmts})
	}
	return out, nil
}

func totalRows(data dataset.Dataset) int {
	total := 0
	for _, n := range data.RowCounts() {
		total += n
	}
	return total
}
