package repository

import (
	"github.com/limchewyew/CompanyDirectory/internal/sheet"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	TabDatabase  = "Database"
	TabUsers     = "Users"
	TabLists     = "Lists"
	TabListItems = "ListItems"
	TabUnlocks   = "Unlocks"

	deletedPrefix = "[DELETED] "
	sheetTrue     = "TRUE"
	sheetFalse    = "FALSE"
)

// SheetTables holds one Table per tab so header checks are shared.
type SheetTables struct {
	Values    sheet.Values
	Users     *sheet.Table
	Lists     *sheet.Table
	ListItems *sheet.Table
	Unlocks   *sheet.Table
}

func NewSheetTables(values sheet.Values) *SheetTables {
	return &SheetTables{
		Values:    values,
		Users:     sheet.NewTable(values, TabUsers, "id", "email", "name", "createdAt"),
		Lists:     sheet.NewTable(values, TabLists, "id", "ownerEmail", "name", "isPublic", "createdAt"),
		ListItems: sheet.NewTable(values, TabListItems, "id", "listId", "companyId", "createdAt"),
		Unlocks:   sheet.NewTable(values, TabUnlocks, "id", "email", "companyId", "createdAt"),
	}
}

func (s *SheetTables) All() []*sheet.Table {
	return []*sheet.Table{s.Users, s.Lists, s.ListItems, s.Unlocks}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatBool(b bool) string {
	if b {
		return sheetTrue
	}
	return sheetFalse
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), sheetTrue)
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
