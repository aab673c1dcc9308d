package processing

import (
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/cnab"
	"github.com/amirhossein-jamali/cnab-processor/internal/domain/entity"
)

// StoreGroup is the records of one store, in file order
type StoreGroup struct {
	Key     entity.StoreKey
	Records []cnab.Record
}

// GroupByStore groups records by store business key, keeping groups in first-seen order
func GroupByStore(records []cnab.Record) []StoreGroup {
	index := make(map[entity.StoreKey]int)
	var groups []StoreGroup

	for _, rec := range records {
		key := rec.StoreKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, StoreGroup{Key: key})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	return groups
}
