// Package export renders favorites to interchange formats and builds tagged
// landing-page URLs.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"adforge/internal/types"
)

// FavoritesJSON writes the favorites list as indented JSON.
func FavoritesJSON(w io.Writer, favorites []types.FavoriteVariant) error {
	if favorites == nil {
		favorites = []types.FavoriteVariant{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(favorites)
}

// FavoritesCSV writes one row per favorite. Multiple headlines are joined
// with " | " into a single cell.
func FavoritesCSV(w io.Writer, favorites []types.FavoriteVariant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"campaign", "platform", "vibe", "headline", "primaryText", "description", "cta"}); err != nil {
		return err
	}
	for _, f := range favorites {
		row := []string{
			f.Campaign,
			string(f.Platform),
			f.Vibe,
			strings.Join(f.Variant.Headlines, " | "),
			f.Variant.PrimaryText,
			f.Variant.Description,
			f.Variant.CTA,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
