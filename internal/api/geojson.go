package api

import (
	"github.com/franzenjb/hurricane-aid-production/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   *Geometry      `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func pointGeometry(p *models.Point) *Geometry {
	if p == nil {
		return nil
	}
	return &Geometry{
		Type:        "Point",
		Coordinates: []float64{p.Lng, p.Lat},
	}
}

func requestsToGeoJSON(requests []models.HelpRequest) FeatureCollection {
	features := make([]Feature, 0, len(requests))

	for _, r := range requests {
		f := Feature{
			Type:     "Feature",
			Geometry: pointGeometry(r.Location),
			Properties: map[string]any{
				"id":            r.ID,
				"resident_name": r.ResidentName,
				"need_type":     string(r.NeedType),
				"priority":      string(r.Priority),
				"status":        string(r.Status),
				"created_at":    r.CreatedAt,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func resourcesToGeoJSON(resources []models.Resource) FeatureCollection {
	features := make([]Feature, 0, len(resources))

	for _, r := range resources {
		f := Feature{
			Type:     "Feature",
			Geometry: pointGeometry(r.Location),
			Properties: map[string]any{
				"id":         r.ID,
				"name":       r.Name,
				"type":       r.Type,
				"status":     string(r.Status),
				"address":    r.Address,
				"details":    r.Details,
				"updated_at": r.UpdatedAt,
			},
		}
		features = append(features, f)
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
