package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: go run scripts/verify_report.go <report.xlsx>")
	}
	filename := os.Args[1]

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	fmt.Printf("=== REPORT CHECK: %s ===\n", filename)
	fmt.Printf("Sheets: %v\n\n", sheets)

	failed := false
	fail := func(format string, args ...interface{}) {
		fmt.Printf("❌ "+format+"\n", args...)
		failed = true
	}

	if len(sheets) == 0 || sheets[0] != "All Power Plants" {
		fail("first sheet should be All Power Plants")
	}

	// Capacity total of the primary sheet, every summary must match it
	primaryTotal, primaryRows := 0.0, 0
	if rows, err := f.GetRows("All Power Plants"); err == nil && len(rows) > 0 {
		capCol := indexOf(rows[0], "capacity")
		if capCol < 0 {
			fail("primary sheet has no capacity column")
		}
		for _, row := range rows[1:] {
			primaryRows++
			if capCol >= 0 && capCol < len(row) {
				v, _ := strconv.ParseFloat(row[capCol], 64)
				primaryTotal += v
			}
		}
	}
	fmt.Printf("Primary sheet: %d rows, %.1f total capacity\n", primaryRows, primaryTotal)

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			fail("%s: %v", sheet, err)
			continue
		}
		for i, h := range firstRow(rows) {
			if h == "" {
				fail("%s: empty header in column %d", sheet, i+1)
			}
		}

		tables, err := f.GetTables(sheet)
		if err != nil {
			fail("%s: %v", sheet, err)
			continue
		}
		if len(rows) >= 2 && len(firstRow(rows)) >= 2 && len(tables) != 1 {
			fail("%s: expected one styled table, found %d", sheet, len(tables))
		}
		for _, t := range tables {
			fmt.Printf("  %-28s table %-32s %s (%s)\n", sheet, t.Name, t.Range, t.StyleName)
		}

		if sheet == "All Power Plants" || len(rows) == 0 {
			continue
		}
		capCol := indexOf(rows[0], "Total_Capacity")
		countCol := indexOf(rows[0], "Total_Power_Plants")
		if capCol < 0 || countCol < 0 {
			fail("%s: missing total columns", sheet)
			continue
		}
		total, count := 0.0, 0
		for _, row := range rows[1:] {
			if capCol < len(row) {
				v, _ := strconv.ParseFloat(row[capCol], 64)
				total += v
			}
			if countCol < len(row) {
				n, _ := strconv.Atoi(row[countCol])
				count += n
			}
		}
		// Sheets that drop missing keys may hold less
		if total > primaryTotal+1e-6 || count > primaryRows {
			fail("%s: totals %.1f/%d exceed the primary sheet", sheet, total, count)
		} else if math.Abs(total-primaryTotal) > 1e-6 || count != primaryRows {
			fmt.Printf("⚠️  %s: totals %.1f/%d differ from the primary sheet\n", sheet, total, count)
		}
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ Report check: FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ Report check: OK")
}

func firstRow(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
