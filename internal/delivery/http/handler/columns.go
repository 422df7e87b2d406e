package handler

import "planboard/internal/database/schema"

var descriptionColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(schema.DescriptionColumns))
	for _, c := range schema.DescriptionColumns {
		set[c] = struct{}{}
	}
	return set
}()
