/*
 *     Copyright 2024 The Dragonfly Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package learner

import (
	"fmt"

	"d7y.io/stacklearn/pkg/slices"
)

// Table is a numeric covariate table stored row by row.
type Table struct {
	// Columns are the covariate names, optional.
	Columns []string `json:"columns,omitempty" yaml:"columns,omitempty"`

	// Rows holds n rows of p values each.
	Rows [][]float64 `json:"rows" yaml:"rows"`
}

// NewTable returns a table of the given rows.
func NewTable(columns []string, rows [][]float64) *Table {
	return &Table{
		Columns: columns,
		Rows:    rows,
	}
}

// NRow returns the number of rows.
func (t *Table) NRow() int {
	if t == nil {
		return 0
	}

	return len(t.Rows)
}

// NCol returns the number of columns.
func (t *Table) NCol() int {
	if t == nil {
		return 0
	}

	if len(t.Columns) > 0 {
		return len(t.Columns)
	}

	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}

	return 0
}

// Validate returns an error if the table is empty or ragged.
func (t *Table) Validate() error {
	if t == nil || len(t.Rows) == 0 {
		return ErrEmptyTable
	}

	p := t.NCol()
	if p == 0 {
		return fmt.Errorf("%w: no columns", ErrEmptyTable)
	}

	if name, ok := slices.FindDuplicate(t.Columns); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}

	for i, row := range t.Rows {
		if len(row) != p {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrColumnMismatch, i, len(row), p)
		}
	}

	return nil
}

// Subset returns a table holding the given rows, rows are shared not copied.
func (t *Table) Subset(rows []int) *Table {
	subset := &Table{
		Columns: t.Columns,
		Rows:    make([][]float64, len(rows)),
	}
	for i, r := range rows {
		subset.Rows[i] = t.Rows[r]
	}

	return subset
}
