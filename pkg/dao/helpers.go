package dao

import (
	"strings"

	uuid2 "github.com/google/uuid"
	"gorm.io/gorm/clause"
)

var forUpdateClause = clause.Locking{Strength: "UPDATE"}

func UuidifyString(possibleUuid string) uuid2.UUID {
	uuid, err := uuid2.Parse(possibleUuid)
	if err != nil {
		return uuid2.Nil
	}
	return uuid
}

func UuidifyStrings(possibleUuids []string) []uuid2.UUID {
	var uuids []uuid2.UUID
	for _, possibleUuid := range possibleUuids {
		uuids = append(uuids, UuidifyString(possibleUuid))
	}
	return uuids
}

func convertSortByToSQL(SortBy string, SortMap map[string]string, defaultSortBy string) string {
	sortByArray := strings.Split(SortBy, ",")
	orderBy := make([]string, 0, len(sortByArray))

	for _, sortBy := range sortByArray {
		split := strings.Split(sortBy, ":")
		ascOrDesc := " asc"

		if len(split) > 1 && split[1] == "desc" {
			ascOrDesc = " desc"
		}

		// Only fields the SortMap knows about make it into the clause,
		// unknown ones are dropped without leaving a dangling separator.
		sortField, ok := SortMap[strings.TrimSpace(split[0])]
		if ok {
			orderBy = append(orderBy, sortField+ascOrDesc)
		}
	}

	if len(orderBy) == 0 {
		return defaultSortBy
	}
	return strings.Join(orderBy, ", ")
}

// emailDomain returns the lowercased domain part of an email address, or ""
// when the address has no "@".
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
