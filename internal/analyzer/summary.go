package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"plant-report/internal/config"
	"plant-report/internal/model"
)

// ErrUnknownColumn is returned when a grouping column is not in the table
var ErrUnknownColumn = errors.New("unknown grouping column")

const (
	TotalCapacityColumn = "Total_Capacity"
	TotalPlantsColumn   = "Total_Power_Plants"
)

// MissingKeyPolicy decides what happens to rows whose grouping key is missing
type MissingKeyPolicy string

const (
	// MissingBucket groups such rows under Options.MissingLabel
	MissingBucket MissingKeyPolicy = "bucket"

	// MissingDrop leaves such rows out of that one summary
	MissingDrop MissingKeyPolicy = "drop"
)

// Options controls aggregation
type Options struct {
	CapacityColumn string
	MissingKey     MissingKeyPolicy
	MissingLabel   string
}

// OptionsFromConfig maps the analysis section of the configuration
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CapacityColumn: cfg.Input.CapacityColumn,
		MissingKey:     MissingKeyPolicy(cfg.Analysis.MissingKey),
		MissingLabel:   cfg.Analysis.MissingLabel,
	}
}

// Group is one row of a summary
type Group struct {
	Key           string
	TotalCapacity float64
	TotalPlants   int

	// missing marks the bucket holding rows without a key
	missing bool
}

// Summary is the result of grouping the record table by one column
type Summary struct {
	// Sheet title the summary is rendered under
	Title string

	// Grouping column, also the name of the key column
	Column string

	// One entry per distinct key, sorted by key; the missing bucket comes last
	Groups []Group

	// Rows left out because their key was missing and the policy is drop
	Dropped int
}

// Summarize partitions rows by column and totals capacity and row count per key
func Summarize(t *model.Table, column string, opts Options) (*Summary, error) {
	keyIdx := t.Index(column)
	if keyIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	capIdx := t.Index(opts.CapacityColumn)
	if capIdx < 0 {
		return nil, fmt.Errorf("%w: capacity column %q", ErrUnknownColumn, opts.CapacityColumn)
	}

	s := &Summary{Column: column}
	index := make(map[string]int)
	missingIdx := -1

	for _, row := range t.Rows {
		key := row[keyIdx]
		capacity := row[capIdx].Float()

		var pos int
		if key.IsMissing() {
			if opts.MissingKey == MissingDrop {
				s.Dropped++
				continue
			}
			if missingIdx < 0 {
				missingIdx = len(s.Groups)
				s.Groups = append(s.Groups, Group{Key: opts.MissingLabel, missing: true})
			}
			pos = missingIdx
		} else {
			text := key.Text()
			p, ok := index[text]
			if !ok {
				p = len(s.Groups)
				index[text] = p
				s.Groups = append(s.Groups, Group{Key: text})
			}
			pos = p
		}

		s.Groups[pos].TotalCapacity += capacity
		s.Groups[pos].TotalPlants++
	}

	sort.SliceStable(s.Groups, func(i, j int) bool {
		if s.Groups[i].missing != s.Groups[j].missing {
			return !s.Groups[i].missing
		}
		return s.Groups[i].Key < s.Groups[j].Key
	})

	return s, nil
}

// SummarizeAll runs one summary per configured group, in order
func SummarizeAll(t *model.Table, groups []config.GroupConfig, opts Options) ([]*Summary, error) {
	summaries := make([]*Summary, 0, len(groups))
	for _, g := range groups {
		s, err := Summarize(t, g.Column, opts)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", g.Sheet, err)
		}
		s.Title = g.Sheet
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Table renders the summary as a record table:
// key column, Total_Capacity, Total_Power_Plants
func (s *Summary) Table() *model.Table {
	t := model.NewTable([]string{s.Column, TotalCapacityColumn, TotalPlantsColumn})
	t.Rows = make([][]model.Value, 0, len(s.Groups))
	for _, g := range s.Groups {
		t.Rows = append(t.Rows, []model.Value{
			model.String(g.Key),
			model.Number(g.TotalCapacity),
			model.Number(float64(g.TotalPlants)),
		})
	}
	return t
}

// TotalCapacity sums capacity over every group
func (s *Summary) TotalCapacity() float64 {
	total := 0.0
	for _, g := range s.Groups {
		total += g.TotalCapacity
	}
	return total
}

// TotalPlants sums row counts over every group
func (s *Summary) TotalPlants() int {
	total := 0
	for _, g := range s.Groups {
		total += g.TotalPlants
	}
	return total
}
