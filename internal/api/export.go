package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/franzenjb/hurricane-aid-production/internal/models"
	"github.com/franzenjb/hurricane-aid-production/internal/repository"
)

const redactedPlaceholder = "[REDACTED]"

type exportBody struct {
	Table   string            `json:"table"`
	Format  string            `json:"format"`
	IDs     []string          `json:"ids"`
	Filters map[string]string `json:"filters"`
}

// export streams a filtered table as CSV or GeoJSON. Contact fields on help
// requests are stripped for every role except admin.
func (h *Handler) export(c *gin.Context) {
	var body exportBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if body.Format != "csv" && body.Format != "geojson" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or geojson"})
		return
	}

	role := c.GetString("role")

	switch body.Table {
	case "requests":
		h.exportRequests(c, body, role)
	case "volunteers":
		h.exportVolunteers(c, body)
	case "resources":
		h.exportResources(c, body)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "table must be requests, volunteers, or resources"})
	}
}

func (h *Handler) exportRequests(c *gin.Context, body exportBody, role string) {
	filter := repository.RequestFilter{IDs: body.IDs}
	for key, val := range body.Filters {
		switch key {
		case "status":
			status := models.RequestStatus(val)
			filter.Status = &status
		case "need_type":
			needType := models.NeedType(val)
			filter.NeedType = &needType
		case "priority":
			priority := models.Priority(val)
			filter.Priority = &priority
		case "source":
			source := models.SourceChannel(val)
			filter.Source = &source
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown filter: %s", key)})
			return
		}
	}

	requests, err := h.requests.ListRequests(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch requests"})
		return
	}
	if len(requests) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data found"})
		return
	}

	if role != "admin" {
		for i := range requests {
			requests[i].Phone = ""
			requests[i].Email = ""
			if requests[i].Notes != "" {
				requests[i].Notes = redactedPlaceholder
			}
		}
	}

	if body.Format == "geojson" {
		features := make([]Feature, 0, len(requests))
		for _, r := range requests {
			features = append(features, Feature{
				Type:     "Feature",
				Geometry: pointGeometry(r.Location),
				Properties: map[string]any{
					"id":            r.ID,
					"resident_name": r.ResidentName,
					"phone":         r.Phone,
					"email":         r.Email,
					"address":       r.Address,
					"need_type":     string(r.NeedType),
					"priority":      string(r.Priority),
					"notes":         r.Notes,
					"source":        string(r.Source),
					"status":        string(r.Status),
					"created_at":    r.CreatedAt,
				},
			})
		}
		writeGeoJSONAttachment(c, "requests", FeatureCollection{Type: "FeatureCollection", Features: features})
		return
	}

	header := []string{"id", "resident_name", "phone", "email", "address", "need_type",
		"priority", "notes", "source", "status", "latitude", "longitude", "created_at"}
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		lat, lng := formatPoint(r.Location)
		rows = append(rows, []string{
			r.ID, r.ResidentName, r.Phone, r.Email, r.Address, string(r.NeedType),
			string(r.Priority), r.Notes, string(r.Source), string(r.Status),
			lat, lng, r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeCSVAttachment(c, "requests", header, rows)
}

func (h *Handler) exportVolunteers(c *gin.Context, body exportBody) {
	filter := repository.VolunteerFilter{IDs: body.IDs}
	for key, val := range body.Filters {
		switch key {
		case "alert_opt_in":
			optIn, err := strconv.ParseBool(val)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "alert_opt_in must be true or false"})
				return
			}
			filter.AlertOptIn = &optIn
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown filter: %s", key)})
			return
		}
	}

	volunteers, err := h.volunteers.ListVolunteers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch volunteers"})
		return
	}
	if len(volunteers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data found"})
		return
	}

	if body.Format == "geojson" {
		features := make([]Feature, 0, len(volunteers))
		for _, v := range volunteers {
			features = append(features, Feature{
				Type:     "Feature",
				Geometry: pointGeometry(v.Location),
				Properties: map[string]any{
					"id":           v.ID,
					"name":         v.Name,
					"phone":        v.Phone,
					"email":        v.Email,
					"address":      v.Address,
					"skills":       v.Skills,
					"alert_opt_in": v.AlertOptIn,
					"created_at":   v.CreatedAt,
				},
			})
		}
		writeGeoJSONAttachment(c, "volunteers", FeatureCollection{Type: "FeatureCollection", Features: features})
		return
	}

	header := []string{"id", "name", "phone", "email", "address", "skills",
		"alert_opt_in", "latitude", "longitude", "created_at"}
	rows := make([][]string, 0, len(volunteers))
	for _, v := range volunteers {
		lat, lng := formatPoint(v.Location)
		rows = append(rows, []string{
			v.ID, v.Name, v.Phone, v.Email, v.Address, v.Skills,
			strconv.FormatBool(v.AlertOptIn), lat, lng,
			v.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeCSVAttachment(c, "volunteers", header, rows)
}

func (h *Handler) exportResources(c *gin.Context, body exportBody) {
	filter := repository.ResourceFilter{IDs: body.IDs}
	for key, val := range body.Filters {
		switch key {
		case "status":
			status := models.ResourceStatus(val)
			filter.Status = &status
		case "type":
			ty := val
			filter.Type = &ty
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown filter: %s", key)})
			return
		}
	}

	resources, err := h.resources.ListResources(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch resources"})
		return
	}
	if len(resources) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no data found"})
		return
	}

	if body.Format == "geojson" {
		writeGeoJSONAttachment(c, "resources", resourcesToGeoJSON(resources))
		return
	}

	header := []string{"id", "name", "type", "status", "address", "details",
		"latitude", "longitude", "updated_at", "created_at"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		lat, lng := formatPoint(r.Location)
		rows = append(rows, []string{
			r.ID, r.Name, r.Type, string(r.Status), r.Address, r.Details,
			lat, lng,
			r.UpdatedAt.UTC().Format(time.RFC3339),
			r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeCSVAttachment(c, "resources", header, rows)
}

func formatPoint(p *models.Point) (lat, lng string) {
	if p == nil {
		return "", ""
	}
	return strconv.FormatFloat(p.Lat, 'f', -1, 64), strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func exportFilename(table, ext string) string {
	return fmt.Sprintf("%s_export_%s.%s", table, time.Now().UTC().Format("2006-01-02"), ext)
}

func writeCSVAttachment(c *gin.Context, table string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(table, "csv")))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func writeGeoJSONAttachment(c *gin.Context, table string, fc FeatureCollection) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(table, "geojson")))
	c.JSON(http.StatusOK, fc)
}
