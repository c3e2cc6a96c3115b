package model

// Theme is a static catalog entry describing a tile set. Themes carry no
// derived state; the catalog is a pure lookup table.
type Theme struct {
	Name        string
	DisplayName string
	Tiles       []string
	IsPremium   bool
}
