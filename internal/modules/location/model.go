// README: Location records, the processed table and the errors shared by sources.
package location

import (
	"errors"

	"wayfarer/internal/types"
)

var (
	ErrInsufficientData = errors.New("insufficient location data")
	ErrUnknownRegion    = errors.New("unknown region")
	// ErrPermanent marks source failures that retrying cannot fix.
	ErrPermanent = errors.New("permanent location source failure")
)

// Record is one point of interest as delivered by a Source.
type Record struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Rating     float64  `json:"rating"`
	PriceLevel float64  `json:"price_level"`
	Categories []string `json:"categories,omitempty"`
}

func (r Record) Point() types.Point {
	return types.Point{Lat: r.Latitude, Lng: r.Longitude}
}

type Column string

const (
	ColLatitude   Column = "latitude"
	ColLongitude  Column = "longitude"
	ColRating     Column = "rating"
	ColPriceLevel Column = "price_level"
)

// NumericColumns is the scaling order used for Features.
var NumericColumns = []Column{ColLatitude, ColLongitude, ColRating, ColPriceLevel}

// Features holds one value per entry of NumericColumns.
type Features [4]float64

func (r Record) features() Features {
	return Features{r.Latitude, r.Longitude, r.Rating, r.PriceLevel}
}

type ColumnStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Row pairs the untouched record with its scaled numeric columns.
type Row struct {
	Record Record   `json:"record"`
	Scaled Features `json:"scaled"`
}

// Table is a batch of records standardised with statistics of that batch.
type Table struct {
	Rows  []Row                  `json:"rows"`
	Stats map[Column]ColumnStats `json:"stats"`
}

func (t *Table) Len() int { return len(t.Rows) }
