package api

import (
	"math"     // Distance rounding
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Last donation dates

	"health_guardian/internal/domain"     // Importing domain models
	"health_guardian/internal/geo"        // Search origin
	"health_guardian/internal/middleware" // Principal lookup

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/samber/lo"     // Slice helpers
)

// DonorRequest is the full donor profile submitted by its owner
type DonorRequest struct {
	BloodType    string   `json:"bloodType"`    // ABO/Rh token
	OrganDonor   bool     `json:"organDonor"`   // Organ donor flag
	Phone        string   `json:"phone"`        // Contact phone
	Address      string   `json:"address"`      // Free-text address
	Lat          *float64 `json:"lat"`          // Latitude
	Lng          *float64 `json:"lng"`          // Longitude
	LastDonation string   `json:"lastDonation"` // Optional YYYY-MM-DD
}

// NearestRequest is an emergency proximity search
type NearestRequest struct {
	Lat       *float64 `json:"lat"`       // Search origin latitude
	Lng       *float64 `json:"lng"`       // Search origin longitude
	BloodType string   `json:"bloodType"` // Optional exact blood type
	Limit     int      `json:"limit"`     // Result size, default 5
}

// ContactRequest is an admin message to a donor
type ContactRequest struct {
	Message        string `json:"message" binding:"required"` // Message body
	EmergencyLevel string `json:"emergencyLevel"`             // normal, urgent or critical
}

// RegisterDonorHandler creates or replaces the caller's donor profile
func RegisterDonorHandler(donors Donors) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DonorRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		profile := domain.DonorProfile{
			BloodType:  req.BloodType,
			OrganDonor: req.OrganDonor,
			Lat:        req.Lat,
			Lng:        req.Lng,
			Address:    req.Address,
			Phone:      req.Phone,
		}
		if req.LastDonation != "" {
			d, err := time.Parse(time.DateOnly, req.LastDonation) // Parse the donation date
			if err != nil {
				respondError(c, domain.Invalid("lastDonation", "must be YYYY-MM-DD"))
				return
			}
			profile.LastDonation = &d
		}
		id, err := donors.Upsert(c.Request.Context(), middleware.PrincipalFrom(c), profile)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Donor registration successful", "donorId": id})
	}
}

// ListDonorsHandler lists donors, optionally by blood type and limit
func ListDonorsHandler(donors Donors) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := domain.DonorFilter{BloodType: c.Query("bloodType")}
		if l := c.Query("limit"); l != "" {
			v, err := strconv.Atoi(l)
			if err != nil {
				respondError(c, domain.Invalid("limit", "must be an integer"))
				return
			}
			filter.Limit = v
		}
		list, err := donors.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		if list == nil {
			list = []domain.DonorView{} // Always return an array
		}
		c.JSON(http.StatusOK, gin.H{"donors": list})
	}
}

// GetDonorHandler returns one donor
func GetDonorHandler(donors Donors) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		donor, err := donors.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"donor": donor})
	}
}

// NearestDonorsHandler ranks donors by distance from the submitted location
func NearestDonorsHandler(matcher NearestFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NearestRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		var origin *geo.Point // Absent when either coordinate is missing
		if req.Lat != nil && req.Lng != nil {
			origin = &geo.Point{Lat: *req.Lat, Lng: *req.Lng}
		}
		ranked, err := matcher.FindNearest(c.Request.Context(), origin, req.BloodType, req.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		// Round distances for display; order is already final
		donors := lo.Map(ranked, func(r domain.RankedDonor, _ int) domain.RankedDonor {
			r.DistanceKm = math.Round(r.DistanceKm*100) / 100
			return r
		})
		c.JSON(http.StatusOK, gin.H{"donors": donors})
	}
}

// ContactDonorHandler sends a contact notification to a donor's owner
func ContactDonorHandler(notifications Notifications) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			respondError(c, err)
			return
		}
		var req ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Message is required")
			return
		}
		n, err := notifications.ContactDonor(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Message, req.EmergencyLevel)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Donor contacted successfully", "notificationId": n.ID})
	}
}
