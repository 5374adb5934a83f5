package handler

import (
	"fmt"
	"math"
	"time"

	"randohub/internal/domain"
	"randohub/internal/ports/output"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
	kindTime
)

type patchField struct {
	column string
	kind   fieldKind
}

// patchFields maps the JSON names accepted by PATCH /api/events/:id to columns.
var patchFields = map[string]patchField{
	"name":        {"name", kindString},
	"description": {"description", kindString},
	"location":    {"location", kindString},
	"startPoint":  {"start_point", kindString},
	"date":        {"date", kindTime},
	"duration":    {"duration", kindInt},
	"difficulty":  {"difficulty", kindString},
	"effortIpb":   {"effort_ipb", kindInt},
	"technicite":  {"technicite", kindInt},
	"risques":     {"risques", kindInt},
	"altitudeMin": {"altitude_min", kindInt},
	"altitudeMax": {"altitude_max", kindInt},
	"denivele":    {"denivele", kindInt},
	"visiorando":  {"visiorando", kindInt},
	"distance":    {"distance", kindFloat},
}

// requiredColumns cannot be cleared with null.
var requiredColumns = map[string]bool{"name": true, "location": true, "start_point": true, "date": true}

// decodePatch converts a decoded JSON object into a typed EventPatch. A null
// value clears an optional column.
func decodePatch(raw map[string]any) (output.EventPatch, error) {
	patch := make(output.EventPatch, len(raw))
	for key, v := range raw {
		f, ok := patchFields[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownField, key)
		}
		if v == nil {
			if requiredColumns[f.column] {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidValue, key)
			}
			patch[f.column] = nil
			continue
		}
		val, err := convertPatchValue(f.kind, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidValue, key, err)
		}
		if f.column == "difficulty" && val == "" {
			val = nil
		}
		patch[f.column] = val
	}
	return patch, nil
}

func convertPatchValue(kind fieldKind, v any) (any, error) {
	switch kind {
	case kindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("chaîne attendue")
		}
		return s, nil
	case kindInt:
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return nil, fmt.Errorf("entier attendu")
		}
		return int(f), nil
	case kindFloat:
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("nombre attendu")
		}
		return f, nil
	case kindTime:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("date RFC 3339 attendue")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("date RFC 3339 attendue")
		}
		return t, nil
	}
	return nil, fmt.Errorf("type inconnu")
}
