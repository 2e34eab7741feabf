package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/lzvcup-scraper/internal/domain/dataset"
	"github.com/riskibarqy/lzvcup-scraper/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

const CompetitionsFile = "competitions.json"

// Exporter writes a dataset as one CSV file per table plus the nested
// competitions tree. Existing files are overwritten.
type Exporter struct {
	dir    string
	logger *logging.Logger
}

var _ dataset.Repository = (*Exporter)(nil)

func NewExporter(dir string, logger *logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Exporter{dir: dir, logger: logger}
}

func (e *Exporter) Replace(ctx context.Context, data dataset.Dataset) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	for _, table := range csvTables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.writeCSV(table, data); err != nil {
			return fmt.Errorf("export %s: %w", table.name, err)
		}
	}

	if err := e.writeCompetitions(data); err != nil {
		return fmt.Errorf("export %s: %w", CompetitionsFile, err)
	}

	e.logger.InfoContext(ctx, "dataset exported", "dir", e.dir, "tables", len(csvTables))
	return nil
}

func (e *Exporter) writeCSV(table csvTable, data dataset.Dataset) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(table.header); err != nil {
		return err
	}
	if err := w.WriteAll(table.rows(data)); err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(e.dir, table.name+".csv"), buf.B)
}

type competitionNode struct {
	URL   string            `json:"url"`
	Teams map[string]string `json:"teams"`
}

type regionNode struct {
	Competitions map[string]competitionNode `json:"competitions"`
	Sportshalls  string                     `json:"sportshalls"`
}

// competitionTree nests competitions and their team URLs under area and
// region, with each region's sportshalls listing URL.
func competitionTree(data dataset.Dataset) map[string]map[string]*regionNode {
	tree := make(map[string]map[string]*regionNode)
	region := func(area, name string) *regionNode {
		regions, ok := tree[area]
		if !ok {
			regions = make(map[string]*regionNode)
			tree[area] = regions
		}
		node, ok := regions[name]
		if !ok {
			node = &regionNode{Competitions: make(map[string]competitionNode)}
			regions[name] = node
		}
		return node
	}

	for _, r := range data.Regions {
		region(r.Area, r.Name).Sportshalls = r.SportshallsURL
	}
	for _, c := range data.Competitions {
		node := region(c.Area, c.Region)
		if _, ok := node.Competitions[c.Name]; !ok {
			node.Competitions[c.Name] = competitionNode{URL: c.URL, Teams: make(map[string]string)}
		}
	}
	for _, t := range data.Teams {
		node := region(t.Area, t.Region)
		comp, ok := node.Competitions[t.Competition]
		if !ok {
			comp = competitionNode{Teams: make(map[string]string)}
			node.Competitions[t.Competition] = comp
		}
		comp.Teams[t.Name] = t.URL
	}
	return tree
}

func (e *Exporter) writeCompetitions(data dataset.Dataset) error {
	raw, err := sonic.ConfigStd.MarshalIndent(competitionTree(data), "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(e.dir, CompetitionsFile), raw)
}

func writeFileAtomic(path string, raw []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
