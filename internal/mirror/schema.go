package mirror

import (
	"strconv"

	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"

	"github.com/filmvibe/app-discover-api/internal/models"
)

// CollectionSchema returns the Typesense schema of a catalog mirror
// collection. Field names match what catalog.TypesenseSource filters and
// sorts on.
func CollectionSchema(kind models.ContentKind, name string) *api.CollectionSchema {
	fields := []api.Field{
		{Name: "title", Type: "string", Sort: pointer.True()},
		{Name: "overview", Type: "string", Optional: pointer.True()},
		{Name: "genre_ids", Type: "int32[]", Facet: pointer.True()},
		{Name: "popularity", Type: "float"},
		{Name: "vote_average", Type: "float"},
		{Name: "vote_count", Type: "int32"},
		{Name: "release_date", Type: "string", Optional: pointer.True(), Index: pointer.False()},
		{Name: "release_year", Type: "int32", Optional: pointer.True(), Facet: pointer.True()},
		{Name: "poster_path", Type: "string", Optional: pointer.True(), Index: pointer.False()},
		{Name: "original_language", Type: "string", Optional: pointer.True(), Facet: pointer.True()},
	}
	if kind == models.KindFilm {
		fields = append(fields,
			api.Field{Name: "runtime", Type: "int32", Optional: pointer.True()},
			api.Field{Name: "revenue", Type: "int64", Optional: pointer.True()},
		)
	}

	return &api.CollectionSchema{
		Name:                name,
		Fields:              fields,
		DefaultSortingField: pointer.String("popularity"),
	}
}

// Document converts a catalog candidate into a mirror document.
func Document(c models.Candidate) map[string]interface{} {
	item := c.Item()
	doc := map[string]interface{}{
		"id":           strconv.FormatInt(item.ID, 10),
		"title":        item.Title,
		"overview":     item.Overview,
		"genre_ids":    genreIDs(item.GenreIDs),
		"popularity":   item.Popularity,
		"vote_average": item.VoteAverage,
		"vote_count":   item.VoteCount,
	}
	if item.ReleaseDate != "" {
		doc["release_date"] = item.ReleaseDate
	}
	if year, ok := item.ReleaseYear(); ok {
		doc["release_year"] = year
	}
	if item.PosterPath != "" {
		doc["poster_path"] = item.PosterPath
	}
	if item.OriginalLanguage != "" {
		doc["original_language"] = item.OriginalLanguage
	}
	if f, ok := c.(*models.Film); ok && f.Runtime > 0 {
		doc["runtime"] = f.Runtime
	}
	return doc
}

func genreIDs(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
