package importers

import (
	"context"
	"fmt"

	"github.com/iota-uz/camp-sdk/modules/camp/domain/entities/logistics"
	"github.com/iota-uz/camp-sdk/modules/camp/services/report"
	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// inventoryGroupWidth is item, quantity, location, notes.
const inventoryGroupWidth = 4

type inventoryGroup struct {
	offset   int
	header   string
	category logistics.InventoryCategory
}

// inventoryGroups reads the category names laid out across the header row;
// the first empty header cell ends the list.
func inventoryGroups(header []workbook.Cell) []inventoryGroup {
	var groups []inventoryGroup
	for offset := 0; ; offset += inventoryGroupWidth {
		name := workbook.At(header, offset).Text()
		if name == "" {
			return groups
		}
		groups = append(groups, inventoryGroup{
			offset:   offset,
			header:   name,
			category: logistics.ParseInventoryCategory(name),
		})
	}
}

type inventoryRow struct {
	name     string
	quantity workbook.Cell
	location string
	notes    string
}

func parseInventoryRow(row []workbook.Cell, offset int) inventoryRow {
	return inventoryRow{
		name:     workbook.At(row, offset).Text(),
		quantity: workbook.At(row, offset+1),
		location: workbook.At(row, offset+2).Text(),
		notes:    workbook.At(row, offset+3).Text(),
	}
}

// ImportInventory upserts camp gear by (normalized name, category). Items are
// not tied to the season and reference nobody.
func ImportInventory(ctx context.Context, env *Env, t workbook.Table) (report.Report, error) {
	r := report.Report{Step: StepInventory}

	groups := inventoryGroups(t.Header)
	if len(groups) == 0 {
		r.Warn("%s: no category headers found", rowContext(SheetInventory, -1))
		return r, nil
	}
	for _, g := range groups {
		if _, ok := logistics.LookupInventoryCategory(g.header); !ok {
			r.Warn("%s: unknown category %q; items filed under %s", rowContext(SheetInventory, -1), g.header, g.category)
		}
	}

	perCategory := map[string]int{}
	for i, row := range t.Rows {
		at := rowContext(SheetInventory, i)
		for _, g := range groups {
			in := parseInventoryRow(row, g.offset)
			if in.name == "" {
				continue
			}
			quantity := 1
			if !in.quantity.IsEmpty() {
				n, ok := parseCount(in.quantity)
				if !ok || n < 0 {
					r.Warn("%s: invalid quantity %q for %q; using 1", at, in.quantity.Text(), in.name)
				} else {
					quantity = n
				}
			}

			_, created, err := env.Logistics.UpsertInventoryItem(ctx, logistics.InventoryItem{
				Name:           in.name,
				NormalizedName: transform.NormalizeName(in.name),
				Category:       g.category,
				Quantity:       quantity,
				Location:       in.location,
				Notes:          in.notes,
			})
			if err != nil {
				return r, fmt.Errorf("%s: upsert inventory item %q: %w", at, in.name, err)
			}
			tally(&r, created)
			perCategory[string(g.category)]++
		}
	}

	for category, n := range perCategory {
		r.Detail(category, n)
	}
	return r, nil
}
