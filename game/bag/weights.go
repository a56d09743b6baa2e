package bag

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/minseo-kang/wordgrid/game/tile"
)

// JamoWeights holds the per-class frequency tables used for Korean
// fills.  The tables are loaded from a JSON sidecar generated from
// corpus counts; a built-in table covers the top jamos when the sidecar
// is missing.
type JamoWeights struct {
	Chosung  map[tile.Letter]float64 `json:"chosung"`
	Jungsung map[tile.Letter]float64 `json:"jungsung"`
	Jongsung map[tile.Letter]float64 `json:"jongsung"`
}

// LoadJamoWeights reads the weight tables from the JSON file at path.
// An empty path or a missing file falls back to the built-in table.
func LoadJamoWeights(path string) (*JamoWeights, error) {
	if len(path) == 0 {
		return DefaultJamoWeights(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultJamoWeights(), nil
		}
		return nil, fmt.Errorf("reading jamo weights: %w", err)
	}
	var jw JamoWeights
	if err := json.Unmarshal(b, &jw); err != nil {
		return nil, fmt.Errorf("parsing jamo weights: %w", err)
	}
	if len(jw.Chosung) == 0 || len(jw.Jungsung) == 0 || len(jw.Jongsung) == 0 {
		return nil, fmt.Errorf("jamo weights file %v is missing a class table", path)
	}
	return &jw, nil
}

// DefaultJamoWeights returns the built-in minimal tables covering the
// most frequent jamos.
func DefaultJamoWeights() *JamoWeights {
	return &JamoWeights{
		Chosung: map[tile.Letter]float64{
			"ㅇ": 10.9, "ㄱ": 9.01, "ㄴ": 6.45, "ㄹ": 5.93, "ㅅ": 5.29,
		},
		Jungsung: map[tile.Letter]float64{
			"ㅏ": 7.79, "ㅣ": 5.4, "ㅗ": 4.82, "ㅜ": 4.54, "ㅓ": 4.05,
		},
		Jongsung: map[tile.Letter]float64{
			"ㄴ": 4.0, "ㅇ": 3.5, "ㄹ": 3.0, "ㄱ": 2.5,
		},
	}
}
